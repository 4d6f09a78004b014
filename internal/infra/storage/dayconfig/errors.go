package dayconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация дня не найдена
	ErrConfigNotFound = errors.New("dayconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dayconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dayconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dayconfig.repository: failed to scan row")
)
