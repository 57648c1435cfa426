package domain

import "errors"

// Сообщения, которые отдаются клиенту как есть
const (
	LimitReachedMessage     = "Limit reached"
	GenerationFailedMessage = "Failed to generate banner. Please try again."
)

var (
	// ErrLimitReached лимит генераций исчерпан, счётчик не изменён
	ErrLimitReached = errors.New("limit reached")
	// ErrUpstreamUnavailable usage service недоступен или ответил не-JSON
	ErrUpstreamUnavailable = errors.New("usage service unavailable")
	// ErrGenerationFailed генерация не удалась (ошибка коллаборатора или пустой ответ)
	ErrGenerationFailed = errors.New("banner generation failed")
	// ErrNoImageData коллаборатор ответил без картинки
	ErrNoImageData = errors.New("no image data returned from gemini")
	// ErrUnknownStyle стиль отсутствует в каталоге
	ErrUnknownStyle = errors.New("unknown style")
	// ErrCheckoutConfig неизвестный план или не задан price id
	ErrCheckoutConfig = errors.New("invalid checkout plan")
	// ErrCheckoutUpstream ошибка платёжного провайдера
	ErrCheckoutUpstream = errors.New("checkout provider error")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// UpstreamError ошибка внешнего сервиса с сообщением, которое можно показать пользователю как есть
type UpstreamError struct {
	Kind    error
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}
