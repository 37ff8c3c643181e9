package xerrors

var (
	// ErrNullArgument 键为空。
	ErrNullArgument = New(ErrInvalidArg, 400101, "null argument", "tree cannot store or look up nil keys", nil)
	// ErrDuplicateKey 键已存在。
	ErrDuplicateKey = New(ErrAlreadyExists, 409101, "duplicate key", "tree already contains an equal key", nil)
	// ErrKeyNotFound 键不存在。
	ErrKeyNotFound = New(ErrNotFound, 404101, "key not found", "tree does not contain the key", nil)
	// ErrInvariantViolation 树结构不变量被破坏。
	ErrInvariantViolation = New(ErrInternal, 500101, "invariant violation", "red-black tree structure is corrupted", nil)
)
