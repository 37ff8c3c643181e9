package rbtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ordtree/logging"
	"github.com/wyfcoding/ordtree/xerrors"
)

// chain 手工构造一条右链 1 -> 2 -> 3, 不经过插入修复.
func chain() (*RBTree[int], *RBNode[int], *RBNode[int], *RBNode[int]) {
	tr := NewOrderedRBTree[int]()
	a := &RBNode[int]{value: 1, color: Black}
	b := &RBNode[int]{value: 2, color: Red, parent: a}
	c := &RBNode[int]{value: 3, color: Red, parent: b}
	a.right = b
	b.right = c
	tr.root = a
	tr.size = 3
	return tr, a, b, c
}

func TestRotateLeftOnChain(t *testing.T) {
	tr, a, b, c := chain()

	require.NoError(t, tr.rotate(b, a))

	assert.Same(t, b, tr.root)
	assert.Nil(t, b.parent)
	assert.Same(t, a, b.left)
	assert.Same(t, c, b.right)
	assert.Same(t, b, a.parent)
	assert.Nil(t, a.left)
	assert.Nil(t, a.right, "missing inner subtree leaves the slot empty")
	assert.Equal(t, []int{1, 2, 3}, tr.InOrder())

	assert.Equal(t, Black, a.color, "rotation never recolors")
	assert.Equal(t, Red, b.color)
}

func TestRotateRightRestoresChain(t *testing.T) {
	tr, a, b, c := chain()
	require.NoError(t, tr.rotate(b, a))

	require.NoError(t, tr.rotate(a, b))

	assert.Same(t, a, tr.root)
	assert.Nil(t, a.parent)
	assert.Same(t, b, a.right)
	assert.Nil(t, b.left)
	assert.Same(t, c, b.right)
	assert.Equal(t, []int{1, 2, 3}, tr.InOrder())
}

func TestRotateReattachesInnerSubtree(t *testing.T) {
	tr := NewOrderedRBTree[int]()
	for _, k := range []int{4, 2, 6, 1, 3} {
		require.NoError(t, tr.Insert(k))
	}
	two := tr.root.left
	require.Equal(t, 2, two.value)
	three := two.right

	require.NoError(t, tr.rotate(two, tr.root))

	assert.Equal(t, 2, tr.root.value)
	four := tr.root.right
	assert.Equal(t, 4, four.value)
	assert.Same(t, three, four.left)
	assert.Same(t, four, three.parent)
	assert.Equal(t, []int{1, 2, 3, 4, 6}, tr.InOrder())
	assert.Equal(t, []int{2, 1, 4, 3, 6}, tr.PreOrder())
}

func TestRotateUpdatesGrandparentLink(t *testing.T) {
	tr := NewOrderedRBTree[int]()
	for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
		require.NoError(t, tr.Insert(k))
	}
	seventy := tr.root.right
	eighty := seventy.right

	require.NoError(t, tr.rotate(eighty, seventy))

	assert.Same(t, eighty, tr.root.right)
	assert.Same(t, tr.root, eighty.parent)
	assert.Same(t, seventy, eighty.left)
	assert.Equal(t, []int{20, 30, 40, 50, 60, 70, 80}, tr.InOrder())
}

func TestRotateRejectsUnrelatedNodes(t *testing.T) {
	tr := NewOrderedRBTree[int]()
	for _, k := range []int{2, 1, 3} {
		require.NoError(t, tr.Insert(k))
	}
	before := tr.LevelOrderString()

	assert.ErrorIs(t, tr.rotate(tr.root.left, tr.root.right), ErrInvariantViolation)
	assert.ErrorIs(t, tr.rotate(tr.root, tr.root.left), ErrInvariantViolation)
	assert.ErrorIs(t, tr.rotate(nil, tr.root), ErrInvariantViolation)

	// 父指针指向 parent 但 parent 的孩子链接不含 child
	orphan := &RBNode[int]{value: 9, parent: tr.root}
	assert.ErrorIs(t, tr.rotate(orphan, tr.root), ErrInvariantViolation)

	assert.Equal(t, before, tr.LevelOrderString())
	assert.NoError(t, tr.Verify())
}

func TestVerifyDetectsCorruption(t *testing.T) {
	build := func() *RBTree[int] {
		tr := NewOrderedRBTree[int]()
		for _, k := range []int{10, 20, 30} {
			require.NoError(t, tr.Insert(k))
		}
		require.NoError(t, tr.Verify())
		return tr
	}

	tests := []struct {
		name    string
		corrupt func(tr *RBTree[int])
		detail  string
	}{
		{"red root", func(tr *RBTree[int]) { tr.root.color = Red }, "root 20 is red"},
		{"black height", func(tr *RBTree[int]) { tr.root.left.color = Black }, "black-height mismatch at 20"},
		{"red red", func(tr *RBTree[int]) {
			thirty := tr.root.right
			thirty.left = &RBNode[int]{value: 25, color: Red, parent: thirty}
		}, "red node 30 has a red child"},
		{"order", func(tr *RBTree[int]) { tr.root.left.value = 99 }, "node 99 is not less than ancestor 20"},
		{"stale parent", func(tr *RBTree[int]) { tr.root.right.parent = nil }, "stale parent link"},
		{"size", func(tr *RBTree[int]) { tr.size = 4 }, "size is 4 but 3 nodes are reachable"},
		{"double black", func(tr *RBTree[int]) { tr.root.right.color = DoubleBlack }, "double-black outside of a repair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build()
			tt.corrupt(tr)

			err := tr.Verify()
			require.ErrorIs(t, err, ErrInvariantViolation)
			e, ok := xerrors.FromError(err)
			require.True(t, ok)
			assert.Contains(t, e.Detail, tt.detail)
		})
	}
}

func TestNilKeyCheck(t *testing.T) {
	assert.False(t, NewOrderedRBTree[int]().nilKey(0))
	assert.False(t, NewOrderedRBTree[string]().nilKey(""))

	ptrs := NewRBTree(func(a, b *int) int { return *a - *b })
	assert.True(t, ptrs.nilKey(nil))
	one := 1
	assert.False(t, ptrs.nilKey(&one))

	anys := NewRBTree(func(a, b any) int { return 0 })
	assert.True(t, anys.nilKey(nil))
	assert.False(t, anys.nilKey(0))
}

func TestDebugLoggingIsGated(t *testing.T) {
	assert.False(t, NewOrderedRBTree[int]().debugEnabled())

	var buf bytes.Buffer
	logger := logging.NewFromConfig(logging.Config{Service: "ordtree", Module: "rbtree", Level: "info", Writer: &buf})
	t.Cleanup(func() { logging.SetLevel("info") })

	tr := NewOrderedRBTree[int](WithLogger(logger))
	assert.False(t, tr.debugEnabled())
	for _, k := range []int{10, 20, 30} {
		require.NoError(t, tr.Insert(k))
	}
	assert.Zero(t, buf.Len())

	logging.SetLevel("debug")
	assert.True(t, tr.debugEnabled())
	require.NoError(t, tr.Remove(20))
	assert.Contains(t, buf.String(), "rbtree fixup")
}
