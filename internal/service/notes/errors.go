package notes

import "errors"

var (
	// ErrForbidden возвращается при нарушении прав доступа:
	// операция только для владельца либо не хватает уровня read/write
	ErrForbidden = errors.New("access denied")

	// ErrNotInRecycleBin возвращается при попытке восстановить заметку,
	// которая не находится в корзине
	ErrNotInRecycleBin = errors.New("note is not in recycle bin")

	// ErrSelfShare возвращается при попытке расшарить заметку её владельцу
	ErrSelfShare = errors.New("cannot share note with its owner")
)
