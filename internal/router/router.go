package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"neetprep-backend/internal/handlers"
	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/middleware"
)

func New(
	log *logger.Logger,
	writeLimiter *middleware.RateLimiter,
	healthHandler *handlers.HealthHandler,
	subjectHandler *handlers.SubjectHandler,
	chapterHandler *handlers.ChapterHandler,
	questionHandler *handlers.QuestionHandler,
	storageHandler *handlers.StorageHandler,
	messageHandler *handlers.MessageHandler,
	quizHandler *handlers.QuizHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		if writeLimiter != nil {
			r.Use(writeLimiter.WritesOnly)
		}

		// ──── Subjects ────
		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", subjectHandler.List)
			r.Post("/", subjectHandler.Create)
			r.Delete("/{id}", subjectHandler.Delete)
			r.Get("/{id}/chapters", subjectHandler.Chapters)
		})

		// ──── Chapters ────
		r.Route("/chapters", func(r chi.Router) {
			r.Get("/", chapterHandler.List)
			r.Post("/", chapterHandler.Create)
			r.Get("/{id}", chapterHandler.Get)
			r.Delete("/{id}", chapterHandler.Delete)
		})

		// ──── Questions ────
		r.Route("/questions", func(r chi.Router) {
			r.Get("/chapter/{chapterId}", questionHandler.ListByChapter)
			r.Post("/bulk", questionHandler.CreateBulk)
			r.Delete("/{id}", questionHandler.Delete)
		})

		// ──── Storage ────
		r.Route("/files", func(r chi.Router) {
			r.Get("/", storageHandler.ListFiles)
			r.Post("/", storageHandler.CreateFile)
			r.Delete("/{id}", storageHandler.DeleteFile)
		})
		r.Route("/folders", func(r chi.Router) {
			r.Get("/", storageHandler.ListFolders)
			r.Post("/", storageHandler.CreateFolder)
			r.Delete("/{id}", storageHandler.DeleteFolder)
		})

		// ──── Chat ────
		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.List)
			r.Post("/", messageHandler.Create)
			r.Delete("/", messageHandler.Clear)
		})

		// ──── Quiz ────
		r.Route("/quiz", func(r chi.Router) {
			r.Delete("/", quizHandler.Clear)
			r.Post("/sessions", quizHandler.CreateSession)
			r.Get("/sessions/{id}", quizHandler.GetSession)
			r.Patch("/sessions/{id}", quizHandler.UpdateSession)
			r.Post("/sessions/{id}/answers", quizHandler.RecordAnswer)
			r.Get("/sessions/{id}/answers", quizHandler.ListAnswers)
			r.Post("/stats", quizHandler.CreateStat)
			r.Get("/user-stats", quizHandler.GetUserStats)
			r.Put("/user-stats", quizHandler.UpdateUserStats)
		})
	})

	return r
}
