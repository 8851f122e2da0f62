package ports

// EventPublisher define a interface para publicação de eventos de
// mudança (ex.: feed de alterações via websocket)
type EventPublisher interface {
	Publish(event string, data any)
}
