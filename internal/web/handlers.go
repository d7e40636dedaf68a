package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rassi0429/miragex.app/internal/deploy"
	"github.com/rassi0429/miragex.app/internal/k8s"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/ptr"
)

// Platform is the slice of the k8s client the handlers need. Tests
// substitute a fake.
type Platform interface {
	Create(ctx context.Context, spec deploy.Spec) (string, error)
	List(ctx context.Context) ([]k8s.DeploymentStatus, error)
	Delete(ctx context.Context, name string) error
	Logs(ctx context.Context, name string, tailLines *int64) (string, error)
	Manifest(ctx context.Context, name string) (string, error)
}

type Handler struct {
	platform Platform
	ids      deploy.Generator
	port     int
	log      logrus.FieldLogger
}

func New(platform Platform, ids deploy.Generator, containerPort int, log logrus.FieldLogger) *Handler {
	return &Handler{
		platform: platform,
		ids:      ids,
		port:     containerPort,
		log:      log,
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/deploy", h.deploy)
	r.Get("/deployments", h.deployments)
	r.Get("/logs/{name}", h.logs)
	r.Get("/delete/{name}", h.delete)
	r.Get("/manifest/{name}", h.manifest)
	r.Get("/healthz", h.healthz)
	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index", nil)
}

func (h *Handler) deploy(w http.ResponseWriter, r *http.Request) {
	repo := strings.TrimSpace(r.FormValue("repo"))
	host := strings.TrimSpace(r.FormValue("host"))

	name, err := h.ids.Generate(repo)
	if err != nil {
		h.failure(w, err)
		return
	}

	spec := deploy.Spec{
		Name: name,
		Repo: repo,
		Env:  deploy.ParseEnvBlob(r.FormValue("env")),
		Host: host,
		Port: h.port,
	}

	created, err := h.platform.Create(r.Context(), spec)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.render(w, "deployed", struct {
		Name string
		Host string
	}{created, host})
}

func (h *Handler) deployments(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.platform.List(r.Context())
	if err != nil {
		h.failure(w, err)
		return
	}

	h.render(w, "deployments", struct {
		Deployments []k8s.DeploymentStatus
	}{statuses})
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	var tailLines *int64
	if v := r.URL.Query().Get("tail"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid tail parameter", http.StatusBadRequest)
			return
		}
		tailLines = ptr.To(n)
	}

	logs, err := h.platform.Logs(r.Context(), chi.URLParam(r, "name"), tailLines)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(logs))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.platform.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.failure(w, err)
		return
	}
	http.Redirect(w, r, "/deployments", http.StatusSeeOther)
}

func (h *Handler) manifest(w http.ResponseWriter, r *http.Request) {
	manifest, err := h.platform.Manifest(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(manifest))
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.log.WithError(err).Errorf("rendering %s", name)
	}
}

// failure converts any error into the generic failure page carrying the
// underlying message. Callers cannot tell a partial triad from a clean
// failure; the listing is the place to inspect what remains.
func (h *Handler) failure(w http.ResponseWriter, err error) {
	h.log.WithError(err).Error("request failed")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := pages.ExecuteTemplate(w, "error", struct{ Message string }{err.Error()}); err != nil {
		h.log.WithError(err).Error("rendering error page")
	}
}
