package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/view"
)

var homeCatalogs = []string{
	string(domain.CatalogThemes),
	string(domain.CatalogColors),
	string(domain.CatalogSources),
	string(domain.CatalogBrands),
}

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.HomePage(homeCatalogs).Render(r.Context(), w); err != nil {
		slog.Error("render home page", "error", err)
	}
}
