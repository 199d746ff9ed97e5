package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound сущность не существует (или была удалена) на момент действия
	ErrNotFound = errors.New("not found")
	// ErrAlreadyBooked по запросу уже создано бронирование
	ErrAlreadyBooked = errors.New("lesson request already booked")
	// ErrRequestFulfilled запрос с бронированием нельзя менять или удалять
	ErrRequestFulfilled = errors.New("lesson request is fulfilled")
	// ErrAlreadyRepeated повторный запрос для бронирования уже существует
	ErrAlreadyRepeated = errors.New("booking already has a repeat request")
)

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
