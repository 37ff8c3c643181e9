package rbtree

import "math/bits"

// Iterator 中序迭代器, 栈中保存尚未访问的祖先节点. 迭代期间不得修改树.
type Iterator[T any] struct {
	stack []*RBNode[T]
}

func (t *RBTree[T]) newIterator() *Iterator[T] {
	// 红黑树高度不超过 2*log2(n+1)
	return &Iterator[T]{stack: make([]*RBNode[T], 0, 2*bits.Len(uint(t.size)))}
}

// NewIterator 返回从最小键开始的迭代器.
func (t *RBTree[T]) NewIterator() *Iterator[T] {
	it := t.newIterator()
	it.descendLeft(t.root)
	return it
}

// Seek 返回从第一个不小于 key 的键开始的迭代器. key 为 nil 时迭代器为空.
func (t *RBTree[T]) Seek(key T) *Iterator[T] {
	it := t.newIterator()
	if t.nilKey(key) {
		return it
	}
	for n := t.root; n != nil; {
		if t.compare(key, n.value) <= 0 {
			it.stack = append(it.stack, n)
			n = n.left
		} else {
			n = n.right
		}
	}
	return it
}

func (it *Iterator[T]) descendLeft(n *RBNode[T]) {
	for ; n != nil; n = n.left {
		it.stack = append(it.stack, n)
	}
}

// Next 返回下一个键, 迭代结束时第二个返回值为 false.
func (it *Iterator[T]) Next() (T, bool) {
	top := len(it.stack) - 1
	if top < 0 {
		var zero T
		return zero, false
	}

	n := it.stack[top]
	it.stack = it.stack[:top]
	it.descendLeft(n.right)
	return n.value, true
}
