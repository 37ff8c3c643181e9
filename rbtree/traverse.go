package rbtree

import (
	"fmt"
	"iter"
	"strings"
)

// InOrder 按升序返回全部键.
func (t *RBTree[T]) InOrder() []T {
	keys := make([]T, 0, t.size)
	it := t.NewIterator()
	for {
		v, ok := it.Next()
		if !ok {
			return keys
		}
		keys = append(keys, v)
	}
}

// All 返回按升序遍历全部键的迭代序列.
func (t *RBTree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := t.NewIterator()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// PreOrder 按先序 (节点、左子树、右子树) 返回全部键.
func (t *RBTree[T]) PreOrder() []T {
	return appendPreOrder(make([]T, 0, t.size), t.root)
}

// LevelOrder 按层序 (广度优先) 返回全部键.
func (t *RBTree[T]) LevelOrder() []T {
	keys := make([]T, 0, t.size)
	if t.root == nil {
		return keys
	}

	queue := []*RBNode[T]{t.root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		keys = append(keys, node.value)
		if node.left != nil {
			queue = append(queue, node.left)
		}
		if node.right != nil {
			queue = append(queue, node.right)
		}
	}
	return keys
}

// Subtree 返回以 key 所在节点为根的子树的先序键序列, 键不存在时返回 nil.
func (t *RBTree[T]) Subtree(key T) []T {
	if t.nilKey(key) {
		return nil
	}
	node := t.find(key)
	if node == nil {
		return nil
	}
	return appendPreOrder(nil, node)
}

func appendPreOrder[T any](keys []T, node *RBNode[T]) []T {
	stack := []*RBNode[T]{}
	if node != nil {
		stack = append(stack, node)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		keys = append(keys, n.value)
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return keys
}

// Min 返回最小键.
func (t *RBTree[T]) Min() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	return minimum(t.root).value, true
}

// Max 返回最大键.
func (t *RBTree[T]) Max() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	return maximum(t.root).value, true
}

// Height 返回树高 (根到最深叶子的节点数), 空树为 0.
func (t *RBTree[T]) Height() int {
	return height(t.root)
}

func height[T any](n *RBNode[T]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// InOrderString 中序调试输出, 形如 "[ a, b, c ]", 空树为 "[  ]".
func (t *RBTree[T]) InOrderString() string {
	return render(t.InOrder())
}

// LevelOrderString 层序调试输出.
func (t *RBTree[T]) LevelOrderString() string {
	return render(t.LevelOrder())
}

func (t *RBTree[T]) String() string {
	return "level order: " + t.LevelOrderString() + "\nin order: " + t.InOrderString()
}

func render[T any](keys []T) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, k)
	}
	sb.WriteString(" ]")
	return sb.String()
}
