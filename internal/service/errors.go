package service

import "errors"

var (
	// ErrDuplicateIdentifier 表示用户名或邮箱已被占用。
	ErrDuplicateIdentifier = errors.New("name or email already taken")
	// ErrNotFound 表示按 ID 查找的用户不存在。
	ErrNotFound = errors.New("user not found")
)
