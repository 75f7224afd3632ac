package ez

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/domain"
	resp "go-gin-gorm-todo/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindForm  Binder = "form"  // POST 表单（GET 时读 query）
	BindQuery Binder = "query" // URL ?a=b
	BindJSON  Binder = "json"
	BindNone  Binder = "none"
)

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindForm:
		err = c.ShouldBind(in)
	case BindQuery:
		err = c.ShouldBindQuery(in)
	case BindJSON:
		err = c.ShouldBindJSON(in)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action JSON 动作：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool // 要求已登录（检查 userId）
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth && c.GetString("userId") == "" {
			writeErr(c, Unauthorized("unauthorized"))
			return
		}
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			writeErr(c, BadRequest(err.Error()))
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}
	e.g.Handle(method(a.Method), a.Path, h)
}

func writeErr(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Err != nil {
			_ = c.Error(ae.Err)
		}
		c.JSON(resp.Status(ae.Code), resp.Error(ae.Code, ae.Error()))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
}

// Form 页面动作：绑定 -> 执行 -> 跳转（PRG）。
// 绑定失败和 Handler 出错都交给 OnError（重新渲染表单或 flash 后跳转）。
type Form[I any] struct {
	Methods  []string
	Path     string
	Binder   Binder
	Redirect string // 成功后跳转，默认 "/"
	Handler  func(c *gin.Context, in *I) error
	OnError  func(c *gin.Context, in *I, err error)
}

func RegisterForm[I any](e EZ, f Form[I]) {
	target := f.Redirect
	if target == "" {
		target = "/"
	}
	h := func(c *gin.Context) {
		var in I
		err := bind(c, f.Binder, &in)
		if err == nil {
			err = f.Handler(c, &in)
		}
		if err != nil {
			f.OnError(c, &in, err)
			return
		}
		if !c.Writer.Written() {
			c.Redirect(http.StatusFound, target)
		}
	}
	methods := f.Methods
	if len(methods) == 0 {
		methods = []string{http.MethodPost}
	}
	for _, m := range methods {
		e.g.Handle(method(m), f.Path, h)
	}
}

func method(m string) string {
	if m == "" {
		return http.MethodPost
	}
	return strings.ToUpper(m)
}
