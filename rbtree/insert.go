package rbtree

// Insert 向红黑树中插入一个新键.
// key 为 nil 返回 ErrNullArgument, 已存在相等键返回 ErrDuplicateKey, 失败时树不变.
func (t *RBTree[T]) Insert(key T) error {
	if t.nilKey(key) {
		return nullArgument("insert")
	}

	var parentNode *RBNode[T]
	var goLeft bool
	currNode := t.root
	for currNode != nil {
		c := t.compare(key, currNode.value)
		if c == 0 {
			return ErrDuplicateKey.Clone().WithContext("key", key)
		}
		parentNode = currNode
		goLeft = c < 0
		if goLeft {
			currNode = currNode.left
		} else {
			currNode = currNode.right
		}
	}

	newNode := &RBNode[T]{value: key, color: Red, parent: parentNode}
	switch {
	case parentNode == nil:
		t.root = newNode
	case goLeft:
		parentNode.left = newNode
	default:
		parentNode.right = newNode
	}
	t.size++

	if err := t.insertFixup(newNode); err != nil {
		return err
	}
	t.observer.OnSize(t.size)
	return nil
}

// insertFixup 在新增一个红色叶子后恢复根黑、无连续红节点与黑高一致.
func (t *RBTree[T]) insertFixup(targetNode *RBNode[T]) error {
	node := targetNode

	for {
		if node == t.root {
			t.fixup(InsertRoot, node)
			node.color = Black
			break
		}

		parent := node.parent
		if parent.color == Black {
			t.fixup(InsertBlackParent, node)
			break
		}

		// 父节点为红色, 因此不是根, 祖父节点必然存在
		grand := parent.parent
		uncle := parent.sibling()

		if isRed(uncle) {
			t.fixup(InsertRedUncle, node)
			parent.color = Black
			uncle.color = Black
			if grand != t.root {
				grand.color = Red
			}
			node = grand
			continue
		}

		t.fixup(InsertBlackUncle, node)
		// 之字形先转成一字形, 新节点上升后接替父节点的角色
		if parent.isLeftChild() == node.isRightChild() {
			if err := t.rotate(node, parent); err != nil {
				return err
			}
			parent = node
		}
		parent.color = Black
		grand.color = Red
		if err := t.rotate(parent, grand); err != nil {
			return err
		}
		break
	}

	t.root.color = Black
	return nil
}
