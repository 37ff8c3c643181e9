package rbtree

// rotate 让 child 取代 parent 的位置, parent 成为 child 的孩子.
// child 是右孩子时左旋, 是左孩子时右旋. 颜色不变.
func (t *RBTree[T]) rotate(child, parent *RBNode[T]) error {
	if child == nil || parent == nil || child.parent != parent {
		return ErrInvariantViolation.Clone().WithDetail("rotate: nodes are not in a direct parent/child relationship")
	}

	var dir Direction
	switch child {
	case parent.right:
		dir = RotateLeft
		// child 的左子树 (可能为空) 挂到 parent 的右侧
		parent.right = child.left
		if child.left != nil {
			child.left.parent = parent
		}
		child.left = parent
	case parent.left:
		dir = RotateRight
		parent.left = child.right
		if child.right != nil {
			child.right.parent = parent
		}
		child.right = parent
	default:
		return ErrInvariantViolation.Clone().WithDetail("rotate: child back-reference does not match parent links")
	}

	grand := parent.parent
	child.parent = grand
	switch {
	case grand == nil:
		t.root = child
	case grand.left == parent:
		grand.left = child
	default:
		grand.right = child
	}
	parent.parent = child

	t.observer.OnRotate(dir)
	if t.debugEnabled() {
		t.logger.Debug("rbtree rotate", "direction", string(dir), "up", child.value, "down", parent.value)
	}
	return nil
}
