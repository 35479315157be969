package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Каталог и покупка
	CatalogFetchFailed      failure.ErrorCode = "CatalogFetchFailed"      // Не удалось получить каталог или баланс
	BalanceFetchFailed      failure.ErrorCode = "BalanceFetchFailed"      // Не удалось получить баланс звёзд
	PriceMismatch           failure.ErrorCode = "PriceMismatch"           // Цена в форме оплаты не совпала с каталогом
	PurchaseTransportFailed failure.ErrorCode = "PurchaseTransportFailed" // Ошибка транспорта при quote/confirm
	UnexpectedPaymentForm   failure.ErrorCode = "UnexpectedPaymentForm"   // Форма оплаты неизвестного вида

	// Получатели
	RecipientUnresolvable failure.ErrorCode = "RecipientUnresolvable" // Пир не найден
	InvalidRecipient      failure.ErrorCode = "InvalidRecipient"      // Неверная конфигурация получателя
	QueueEmpty            failure.ErrorCode = "QueueEmpty"            // Очередь получателей пуста
	ChannelCreateFailed   failure.ErrorCode = "ChannelCreateFailed"   // Не удалось создать канал

	// Состояние
	InvalidPolicy      failure.ErrorCode = "InvalidPolicy"      // min > max и прочее
	StatePersistFailed failure.ErrorCode = "StatePersistFailed" // Не удалось записать состояние
	StateMalformed     failure.ErrorCode = "StateMalformed"     // Сохранённое состояние не разбирается
	StateFetchFailed   failure.ErrorCode = "StateFetchFailed"   // Хранилище недоступно при чтении
)
