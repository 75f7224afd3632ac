package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/domain"
)

const (
	KeyUserID  = "userId"
	KeyUser    = "user"
	keyPending = "flash.pending"
)

// Identifier 按 uid 取回用户（每个请求重新加载）
type Identifier interface {
	Identify(ctx context.Context, uid string) (*domain.User, error)
}

// SessionGate 从签名 cookie 解析当前身份，并负责一次性 flash 消息
type SessionGate struct {
	JWT    *auth.JWTer
	Users  Identifier
	Cookie string
	Secure bool
	Log    *zap.Logger
}

func NewSessionGate(j *auth.JWTer, users Identifier, cookie string, secure bool, l *zap.Logger) *SessionGate {
	if l == nil {
		l = zap.NewNop()
	}
	if cookie == "" {
		cookie = "todo_session"
	}
	return &SessionGate{JWT: j, Users: users, Cookie: cookie, Secure: secure, Log: l}
}

func (g *SessionGate) flashCookie() string { return g.Cookie + "_flash" }

func (g *SessionGate) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", g.Secure, true)
}

// Middleware 解析身份；cookie 无效或用户已不存在时按匿名处理并清掉 cookie
func (g *SessionGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(g.Cookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := g.JWT.Parse(raw)
		if err != nil {
			g.setCookie(c, g.Cookie, "", -1)
			c.Next()
			return
		}
		u, err := g.Users.Identify(c.Request.Context(), claims.UID)
		if err != nil {
			// 存储异常时本次请求按匿名处理，不清 cookie
			g.Log.Warn("identify session user failed", zap.String("uid", claims.UID), zap.Error(err))
			c.Next()
			return
		}
		if u == nil {
			g.setCookie(c, g.Cookie, "", -1)
			c.Next()
			return
		}
		c.Set(KeyUserID, u.ID)
		c.Set(KeyUser, u)
		c.Next()
	}
}

// Login 写入会话 cookie，当前请求内立即生效
func (g *SessionGate) Login(c *gin.Context, u *domain.User) error {
	tok, err := g.JWT.Issue(u.ID)
	if err != nil {
		return err
	}
	g.setCookie(c, g.Cookie, tok, int(g.JWT.TTL/time.Second))
	c.Set(KeyUserID, u.ID)
	c.Set(KeyUser, u)
	return nil
}

func (g *SessionGate) Logout(c *gin.Context) {
	g.setCookie(c, g.Cookie, "", -1)
	c.Set(KeyUserID, "")
	c.Set(KeyUser, (*domain.User)(nil))
}

// Flash 追加消息，下一个渲染的页面展示；请求带来的未读 flash 一并保留
func (g *SessionGate) Flash(c *gin.Context, msgs ...string) {
	pending := append(g.flashes(c), msgs...)
	c.Set(keyPending, pending)
	tok, err := g.JWT.IssueFlash(pending)
	if err != nil {
		g.Log.Warn("issue flash failed", zap.Error(err))
		return
	}
	g.setCookie(c, g.flashCookie(), tok, 300)
}

// TakeFlashes 读取并清除 flash
func (g *SessionGate) TakeFlashes(c *gin.Context) []string {
	out := g.flashes(c)
	c.Set(keyPending, []string{})
	if _, err := c.Cookie(g.flashCookie()); err == nil || len(out) > 0 {
		g.setCookie(c, g.flashCookie(), "", -1)
	}
	return out
}

// flashes 本请求待展示的消息；首次访问时先并入请求 cookie 里的 flash
func (g *SessionGate) flashes(c *gin.Context) []string {
	if v, ok := c.Get(keyPending); ok {
		msgs, _ := v.([]string)
		return append([]string(nil), msgs...)
	}
	var msgs []string
	if raw, err := c.Cookie(g.flashCookie()); err == nil && raw != "" {
		if in, err := g.JWT.ParseFlash(raw); err == nil {
			msgs = in
		}
	}
	c.Set(keyPending, msgs)
	return append([]string(nil), msgs...)
}

// CurrentUserID 匿名返回 ""
func CurrentUserID(c *gin.Context) string { return c.GetString(KeyUserID) }

func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(KeyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
