package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

type pageData struct {
	Title string
	Code  string
}

// page renders one of the static templates
func (r *Router) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.render(w, req, name, pageData{Title: title})
	}
}

// showCode is the Zoho OAuth redirect target. It only displays the code so
// the user can paste it into the sync form.
func (r *Router) showCode(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, "codigo", pageData{
		Title: "Codigo",
		Code:  req.URL.Query().Get("code"),
	})
}

// codeQR renders the authorization code as a PNG QR code
func (r *Router) codeQR(w http.ResponseWriter, req *http.Request) {
	code := req.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		zerolog.Ctx(req.Context()).Warn().Err(err).Msg("QR write failed")
	}
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, name string, data pageData) {
	tmpl, ok := r.pages[name]
	if !ok {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		zerolog.Ctx(req.Context()).Error().Err(err).Str("page", name).Msg("Template render failed")
	}
}
