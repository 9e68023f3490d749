package master

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department with this name already exists")
	ErrPositionNotFound     = errors.New("position not found")
	ErrPositionNameExists   = errors.New("position with this name already exists")
)
