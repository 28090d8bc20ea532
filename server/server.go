package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/websocket"

	"github.com/lguibr/pongduel/room"
)

// Server exposes rooms over HTTP and websocket.
type Server struct {
	rooms  *room.Client
	router chi.Router
}

func New(rooms *room.Client) *Server {
	s := &Server{rooms: rooms}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/subscribe", websocket.Handler(s.HandleSubscribe))

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", s.handleListRooms)
		r.Post("/", s.handleCreateRoom)
		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", s.handleGetRoom)
			r.Delete("/", s.handleCloseRoom)
			r.Get("/frame", s.handleGetFrame)
			r.Post("/input", s.handleInput)
		})
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs one key=value line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Printf("http: method=%s path=%s status=%d bytes=%d duration=%s request_id=%s remote=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start),
				middleware.GetReqID(r.Context()), r.RemoteAddr)
		}()
		next.ServeHTTP(ww, r)
	})
}
