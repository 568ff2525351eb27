package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"estoquefront/internal/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Base carrega os dados comuns a todas as páginas. Usuario vazio significa
// página sem cabeçalho autenticado (login).
type Base struct {
	Titulo  string
	Usuario string
}

// Renderer compila os templates embarcados e renderiza as páginas.
type Renderer struct {
	paginas map[string]*template.Template
	logger  logger.Logger
}

// paginasConhecidas lista os templates de conteúdo; cada um é compilado
// junto com o layout base.
var paginasConhecidas = []string{
	"login",
	"home",
	"produtos",
	"produto_form",
	"produto_excluir",
	"estoque",
}

// New compila todos os templates. Falha de compilação é um erro de build da
// aplicação e deve interromper a inicialização.
func New(log logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"dataHora": func(t time.Time) string {
			return t.Local().Format("02/01/2006 15:04")
		},
	}

	paginas := make(map[string]*template.Template, len(paginasConhecidas))
	for _, nome := range paginasConhecidas {
		tpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			templatesFS, "templates/base.html", "templates/"+nome+".html")
		if err != nil {
			return nil, fmt.Errorf("falha ao compilar template %q: %w", nome, err)
		}
		paginas[nome] = tpl
	}

	return &Renderer{paginas: paginas, logger: log}, nil
}

// Render escreve a página identificada por nome com os dados fornecidos.
func (r *Renderer) Render(w http.ResponseWriter, status int, nome string, data interface{}) {
	tpl, ok := r.paginas[nome]
	if !ok {
		r.logger.Error("Template desconhecido solicitado.", fmt.Errorf("template %q", nome))
		http.Error(w, "Erro interno ao renderizar a página.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.ExecuteTemplate(w, "base.html", data); err != nil {
		r.logger.Error("Falha ao executar template.", err)
	}
}
