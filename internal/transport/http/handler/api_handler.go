package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/service"
	httpez "go-gin-gorm-todo/internal/transport/http/ez"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
)

type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type itemOut struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type listOut struct {
	User   *userOut  `json:"user"`
	Staged []string  `json:"staged"`
	Saved  []itemOut `json:"saved"`
}

// APIHandler /api/v1 只读 JSON 视图
type APIHandler struct {
	todos *service.TodoService
}

func NewAPIHandler(todos *service.TodoService) *APIHandler { return &APIHandler{todos: todos} }

func (h *APIHandler) Priority() int { return 50 }

func (h *APIHandler) Mount(g *gin.RouterGroup) {
	api := httpez.New(g.Group("/api/v1"))
	httpez.RegisterAction(api, httpez.Action[struct{}, listOut]{
		Method: http.MethodGet,
		Path:   "/list",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (listOut, error) {
			board, err := h.todos.Board(c.Request.Context(), mdw.CurrentUserID(c))
			if err != nil {
				return listOut{}, httpez.Internal("load list failed", err)
			}
			return toListOut(mdw.CurrentUser(c), board), nil
		},
	})
}

func toListOut(u *domain.User, b service.Board) listOut {
	out := listOut{Staged: b.Staged, Saved: make([]itemOut, 0, len(b.Saved))}
	if out.Staged == nil {
		out.Staged = []string{}
	}
	if u != nil {
		out.User = &userOut{ID: u.ID, Email: u.Email, Name: u.Name}
	}
	for _, it := range b.Saved {
		out.Saved = append(out.Saved, itemOut{ID: it.ID, Text: it.Text})
	}
	return out
}
