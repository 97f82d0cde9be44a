package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	qport "kejayangu/internal/infrastructure/queue/port"
	"kejayangu/internal/infrastructure/realtime"
	"kejayangu/internal/pkg/chat/presentation/controller"
)

// Options bundles the infrastructure the chat endpoints depend on. Cache and
// Queue may be nil; the endpoints degrade to direct database reads and
// in-process broadcast.
type Options struct {
	Pool        *pgxpool.Pool
	Queue       qport.Client
	Cache       cacheport.Cache
	Router      *realtime.Router
	Log         *slog.Logger
	SendBuffer  int
	MaxFrameLen int64
}

// RegisterRoutes registers chat endpoints under the given (authenticated)
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, opts Options) {
	createCtl := controller.NewCreateChatController(opts.Pool)
	listCtl := controller.NewListChatsController(opts.Pool)
	sendCtl := controller.NewSendMessageController(opts.Pool, opts.Queue, opts.Cache, opts.Router, opts.Log)
	getCtl := controller.NewGetMessageController(opts.Pool)
	unreadCtl := controller.NewUnreadCountController(opts.Pool, opts.Cache)
	readCtl := controller.NewMarkMessageReadController(opts.Pool, opts.Cache)
	deleteCtl := controller.NewDeleteChatController(opts.Pool)
	socketCtl := controller.NewChatSocketController(opts.Pool, opts.Router, opts.Log, opts.SendBuffer, opts.MaxFrameLen)

	// POST /chat -> create-or-get a conversation
	g.POST("/chat", createCtl.Handle())

	// GET /chat -> list the requester's conversations
	g.GET("/chat", listCtl.Handle())

	// GET /chat/unread-count -> aggregate unread badge
	g.GET("/chat/unread-count", unreadCtl.Handle())

	// GET /chat/ws -> websocket endpoint for realtime events
	g.GET("/chat/ws", socketCtl.Handle())

	// POST /chat/:chatId/messages -> send a message into a conversation
	g.POST("/chat/:chatId/messages", sendCtl.Handle())

	// GET /chat/:chatId/messages -> paginated message history
	g.GET("/chat/:chatId/messages", getCtl.Handle())

	// PUT /chat/messages/:messageId/read -> acknowledge one message
	g.PUT("/chat/messages/:messageId/read", readCtl.Handle())

	// DELETE /chat/conversations/:chatId -> terminal delete
	g.DELETE("/chat/conversations/:chatId", deleteCtl.Handle())
}
