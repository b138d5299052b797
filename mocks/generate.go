package mocks

//go:generate mockgen -destination=./mock_buffer.go -package=mocks github.com/candlepad/candlepad/internal/buffer Provider
