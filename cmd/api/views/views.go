package views

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

const (
	Index       = "index.html"
	AllBlogs    = "all-blogs.html"
	BlogDetails = "blog-details.html"
	Login       = "login.html"
	Signup      = "signup.html"
)

var funcs = template.FuncMap{
	// paragraphs 는 생성된 본문을 빈 줄 기준으로 나눈다.
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

// Templates 는 embed 된 페이지 템플릿을 파싱한다. 파일명이 템플릿 이름이다.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
