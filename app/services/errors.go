package services

import "errors"

var (
	// ErrEmptyCatalog nguồn catalog không cho ra dòng hợp lệ nào
	ErrEmptyCatalog = errors.New("catalog has no usable centers")
	// ErrMirrorDisabled chưa cấu hình Meilisearch
	ErrMirrorDisabled = errors.New("catalog mirror is disabled")
	// ErrBatchTooLarge batch vượt quá chat.max_batch
	ErrBatchTooLarge = errors.New("batch too large")
)
