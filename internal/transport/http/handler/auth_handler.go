package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/service"
	httpez "go-gin-gorm-todo/internal/transport/http/ez"
)

type registerForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *TodoHandler) mountAuth(g *gin.RouterGroup) {
	ez := httpez.New(g)

	g.GET("/register", func(c *gin.Context) { h.renderForm(c, "register.html", "Register", &registerForm{}, nil) })
	httpez.RegisterForm(ez, httpez.Form[registerForm]{
		Path:   "/register",
		Binder: httpez.BindForm,
		Handler: func(c *gin.Context, in *registerForm) error {
			u, err := h.users.Register(c.Request.Context(), service.RegisterInput{
				Email:    in.Email,
				Password: in.Password,
				Name:     in.Name,
			})
			if err != nil {
				return err
			}
			return h.gate.Login(c, u)
		},
		OnError: func(c *gin.Context, in *registerForm, err error) {
			h.formError(c, "register.html", "Register", &registerForm{Name: in.Name, Email: in.Email}, err,
				"name", "email", "password")
		},
	})

	g.GET("/login", func(c *gin.Context) { h.renderForm(c, "login.html", "Login", &loginForm{}, nil) })
	httpez.RegisterForm(ez, httpez.Form[loginForm]{
		Path:   "/login",
		Binder: httpez.BindForm,
		Handler: func(c *gin.Context, in *loginForm) error {
			u, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return err
			}
			return h.gate.Login(c, u)
		},
		OnError: func(c *gin.Context, in *loginForm, err error) {
			h.formError(c, "login.html", "Login", &loginForm{Email: in.Email}, err, "email", "password")
		},
	})

	g.GET("/logout", func(c *gin.Context) {
		h.gate.Logout(c)
		c.Redirect(http.StatusFound, "/")
	})
}

// formError 重新展示表单：字段缺失标在字段上，其余错误 flash
func (h *TodoHandler) formError(c *gin.Context, page, title string, form any, err error, fields ...string) {
	var errs map[string]string
	if errors.Is(err, domain.ErrValidation) {
		errs = fieldErrors(err, fields...)
	} else {
		h.report(c, err)
	}
	h.renderForm(c, page, title, form, errs)
}

func (h *TodoHandler) renderForm(c *gin.Context, page, title string, form any, errs map[string]string) {
	h.render(c, page, gin.H{"title": title, "form": form, "errors": errs})
}
