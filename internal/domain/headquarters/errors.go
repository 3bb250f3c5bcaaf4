package headquarters

import "errors"

var (
	ErrHeadquartersNotFound   = errors.New("headquarters not found")
	ErrHeadquartersNameExists = errors.New("headquarters name already exists")
)
