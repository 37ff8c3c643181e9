package rbtree

// Remove 删除与 key 相等的键.
// key 为 nil 返回 ErrNullArgument, 不存在返回 ErrKeyNotFound, 失败时树不变.
func (t *RBTree[T]) Remove(key T) error {
	if t.nilKey(key) {
		return nullArgument("remove")
	}

	target := t.find(key)
	if target == nil {
		return ErrKeyNotFound.Clone().WithContext("op", "remove").WithContext("key", key)
	}

	// 两个孩子: 后继的键覆盖目标节点, 转而删除后继. 后继是右子树最左节点, 至多有一个右孩子.
	if target.left != nil && target.right != nil {
		succ := minimum(target.right)
		t.fixup(RemoveTwoChildren, target)
		target.value = succ.value
		target = succ
	}

	if target.left != nil || target.right != nil {
		t.removeOneChild(target)
	} else if err := t.removeLeaf(target); err != nil {
		return err
	}

	t.size--
	t.observer.OnSize(t.size)
	return nil
}

// removeOneChild 用唯一的孩子顶替节点, 孩子继承被删节点的颜色以保持局部黑高.
func (t *RBTree[T]) removeOneChild(node *RBNode[T]) {
	child := node.left
	if child == nil {
		child = node.right
	}

	t.fixup(RemoveOneChild, node)
	t.replace(node, child)
	child.color = node.color
}

// removeLeaf 删除叶子. 红色叶子或根直接摘除, 黑色非根叶子先修复双黑再摘除.
func (t *RBTree[T]) removeLeaf(leaf *RBNode[T]) error {
	if leaf.color == Red || leaf == t.root {
		t.fixup(RemoveTrivialLeaf, leaf)
		t.replace(leaf, nil)
		return nil
	}

	if err := t.removeFixup(leaf); err != nil {
		return err
	}
	// 修复过程中叶子始终挂在原父节点下
	t.replace(leaf, nil)
	return nil
}

// removeFixup 消除 node 处缺失的一个黑色单位.
// 按 兄弟颜色 × 侄子颜色 × 远近位置 分派, 每轮要么 O(1) 次旋转后结束, 要么把双黑上移一层.
func (t *RBTree[T]) removeFixup(node *RBNode[T]) error {
	x := node
	x.color = DoubleBlack

	for {
		if x == t.root {
			t.fixup(RemoveRootAbsorbs, x)
			x.color = Black
			return nil
		}

		parent := x.parent
		sibling := x.sibling()
		if sibling == nil {
			x.color = Black
			return ErrInvariantViolation.Clone().WithDetail("remove: double-black node %v has no sibling", x.value)
		}

		// 兄弟为红: 先交换颜色再旋转, 转化为兄弟为黑的情形, 对同一个 x 重新分派
		if sibling.color == Red {
			t.fixup(RemoveRedSibling, x)
			sibling.color, parent.color = parent.color, sibling.color
			if err := t.rotate(sibling, parent); err != nil {
				return err
			}
			continue
		}

		near, far := sibling.left, sibling.right
		if x.isRightChild() {
			near, far = sibling.right, sibling.left
		}

		if isRed(near) || isRed(far) {
			t.fixup(RemoveRedNephew, x)
			// 只有近侄子为红: 近侄子经兄弟上升, 成为新的兄弟, 原兄弟成为红色远侄子
			if !isRed(far) {
				near.color, sibling.color = sibling.color, near.color
				if err := t.rotate(near, sibling); err != nil {
					return err
				}
				far = sibling
				sibling = near
			}
			sibling.color, parent.color = parent.color, sibling.color
			if err := t.rotate(sibling, parent); err != nil {
				return err
			}
			far.color = Black
			x.color = Black
			return nil
		}

		// 两个侄子都为黑: 兄弟变红, 缺失的黑色推给父节点
		t.fixup(RemoveBlackNephews, x)
		sibling.color = Red
		x.color = Black

		if parent.color == Red {
			t.fixup(RemoveRedParentStop, parent)
			parent.color = Black
			return nil
		}
		if parent == t.root {
			t.fixup(RemoveRootAbsorbs, parent)
			return nil
		}

		parent.color = DoubleBlack
		x = parent
	}
}
