// Package view 页面模板（嵌入二进制）
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates 供 gin.Engine.SetHTMLTemplate 使用；按文件名渲染，如 "index.html"
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
