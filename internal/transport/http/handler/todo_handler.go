package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/service"
	httpez "go-gin-gorm-todo/internal/transport/http/ez"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
)

type todoForm struct {
	Text string `form:"text" binding:"required"`
}

type deleteTaskQuery struct {
	Index *int `form:"task_index" binding:"required"`
}

type deleteSavedQuery struct {
	ID string `form:"task_id" binding:"required"`
}

// TodoHandler 页面路由：首页、暂存区、保存/清空列表、注册登录
type TodoHandler struct {
	todos *service.TodoService
	users *service.AuthService
	gate  *mdw.SessionGate
	log   *zap.Logger
}

func NewTodoHandler(todos *service.TodoService, users *service.AuthService, gate *mdw.SessionGate, l *zap.Logger) *TodoHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &TodoHandler{todos: todos, users: users, gate: gate, log: l}
}

func (h *TodoHandler) Priority() int { return 10 }

func (h *TodoHandler) Mount(g *gin.RouterGroup) {
	ez := httpez.New(g)

	g.GET("/", func(c *gin.Context) { h.renderHome(c, &todoForm{}, nil) })
	httpez.RegisterForm(ez, httpez.Form[todoForm]{
		Path:    "/",
		Binder:  httpez.BindForm,
		Handler: func(c *gin.Context, in *todoForm) error { return h.todos.Stage(in.Text) },
		OnError: func(c *gin.Context, in *todoForm, err error) {
			h.renderHome(c, in, fieldErrors(err, "text"))
		},
	})

	httpez.RegisterForm(ez, httpez.Form[struct{}]{
		Methods: []string{http.MethodGet, http.MethodPost},
		Path:    "/save-list",
		Binder:  httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) error {
			_, err := h.todos.SaveList(c.Request.Context(), mdw.CurrentUserID(c))
			return err
		},
		OnError: flashHome[struct{}](h),
	})

	httpez.RegisterForm(ez, httpez.Form[struct{}]{
		Methods: []string{http.MethodGet},
		Path:    "/new-list",
		Binder:  httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) error {
			return h.todos.NewList(c.Request.Context(), mdw.CurrentUserID(c))
		},
		OnError: flashHome[struct{}](h),
	})

	httpez.RegisterForm(ez, httpez.Form[deleteTaskQuery]{
		Methods: []string{http.MethodGet},
		Path:    "/delete-task",
		Binder:  httpez.BindQuery,
		Handler: func(c *gin.Context, in *deleteTaskQuery) error { return h.todos.Unstage(*in.Index) },
		OnError: flashHome[deleteTaskQuery](h),
	})

	httpez.RegisterForm(ez, httpez.Form[deleteSavedQuery]{
		Methods: []string{http.MethodGet},
		Path:    "/delete-saved-task",
		Binder:  httpez.BindQuery,
		Handler: func(c *gin.Context, in *deleteSavedQuery) error {
			return h.todos.DeleteSaved(c.Request.Context(), mdw.CurrentUserID(c), in.ID)
		},
		OnError: flashHome[deleteSavedQuery](h),
	})

	h.mountAuth(g)
}

// flashHome 出错：flash 后回首页
func flashHome[I any](h *TodoHandler) func(c *gin.Context, in *I, err error) {
	return func(c *gin.Context, _ *I, err error) {
		h.report(c, err)
		c.Redirect(http.StatusFound, "/")
	}
}

// report 记录非领域错误并 flash 提示
func (h *TodoHandler) report(c *gin.Context, err error) {
	if !isDomainErr(err) {
		_ = c.Error(err)
		h.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	h.gate.Flash(c, flashText(err))
}

func (h *TodoHandler) renderHome(c *gin.Context, form *todoForm, errs map[string]string) {
	uid := mdw.CurrentUserID(c)
	board, err := h.todos.Board(c.Request.Context(), uid)
	if err != nil {
		h.report(c, err)
	}
	h.render(c, "index.html", gin.H{
		"title":  "Home",
		"form":   form,
		"errors": errs,
		"staged": board.Staged,
		"saved":  board.Saved,
	})
}

// render 补齐公共字段：当前用户、flash、空表单错误
func (h *TodoHandler) render(c *gin.Context, name string, data gin.H) {
	data["user"] = mdw.CurrentUser(c)
	data["flashes"] = h.gate.TakeFlashes(c)
	if errs, _ := data["errors"].(map[string]string); errs == nil {
		data["errors"] = map[string]string{}
	}
	c.HTML(http.StatusOK, name, data)
}
