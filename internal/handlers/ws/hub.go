package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/viniciusmp/pessoas-backend/internal/domain/ports"
)

// Event é a mensagem enviada aos clientes conectados
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub mantém as conexões websocket e transmite eventos de mudança
// (person.created, person.updated, person.deleted) para o SPA
// atualizar listagens sem recarregar. Implementa ports.EventPublisher.
type Hub struct {
	logger   ports.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub cria um novo Hub
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origem já é controlada pelo middleware CORS
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handle faz o upgrade da conexão e registra o cliente. A rota passa
// pelo RequireAuth, então só sessões válidas chegam aqui.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.register(conn)
	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	// Loop de leitura: mantém a conexão viva e detecta o fechamento
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(conn)
}

// Publish envia o evento para todos os clientes conectados.
// Clientes com erro de escrita são desconectados.
func (h *Hub) Publish(event string, data any) {
	message := Event{Event: event, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(message); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
