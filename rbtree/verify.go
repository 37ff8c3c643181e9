package rbtree

// Verify 校验全部不变量: BST 有序、父子链接一致、根为黑、无连续红节点、黑高一致、size 与节点数一致.
// 违反时返回 ErrInvariantViolation, Detail 描述首个被发现的问题.
func (t *RBTree[T]) Verify() error {
	if t.root == nil {
		if t.size != 0 {
			return violation("empty tree reports size %d", t.size)
		}
		return nil
	}

	if t.root.parent != nil {
		return violation("root %v has a parent", t.root.value)
	}
	if t.root.color != Black {
		return violation("root %v is %s", t.root.value, t.root.color)
	}

	count := 0
	if _, err := t.verifyNode(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return violation("size is %d but %d nodes are reachable", t.size, count)
	}
	return nil
}

// verifyNode 返回以 n 为根的子树黑高 (nil 叶子计 1).
func (t *RBTree[T]) verifyNode(n *RBNode[T], lo, hi *T, count *int) (int, error) {
	if n == nil {
		return 1, nil
	}
	*count++

	switch n.color {
	case Red:
		if isRed(n.left) || isRed(n.right) {
			return 0, violation("red node %v has a red child", n.value)
		}
	case Black:
	default:
		return 0, violation("node %v carries color %s outside of a repair", n.value, n.color)
	}

	if lo != nil && t.compare(n.value, *lo) <= 0 {
		return 0, violation("node %v is not greater than ancestor %v", n.value, *lo)
	}
	if hi != nil && t.compare(n.value, *hi) >= 0 {
		return 0, violation("node %v is not less than ancestor %v", n.value, *hi)
	}
	if n.left != nil && n.left.parent != n {
		return 0, violation("left child %v of %v has a stale parent link", n.left.value, n.value)
	}
	if n.right != nil && n.right.parent != n {
		return 0, violation("right child %v of %v has a stale parent link", n.right.value, n.value)
	}

	lh, err := t.verifyNode(n.left, lo, &n.value, count)
	if err != nil {
		return 0, err
	}
	rh, err := t.verifyNode(n.right, &n.value, hi, count)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, violation("black-height mismatch at %v: left %d, right %d", n.value, lh, rh)
	}

	if n.color == Black {
		lh++
	}
	return lh, nil
}

// BlackHeight 返回从根到任意 nil 叶子路径上的黑节点数 (不含 nil 叶子).
func (t *RBTree[T]) BlackHeight() int {
	bh := 0
	for n := t.root; n != nil; n = n.left {
		if n.color == Black {
			bh++
		}
	}
	return bh
}

func violation(format string, args ...any) error {
	return ErrInvariantViolation.Clone().WithDetail(format, args...)
}
