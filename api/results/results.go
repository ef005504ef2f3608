package results

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/api/surveys"
	core "github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	qrSize = 256
)

// Store is what the results endpoints read from: surveys for the ownership
// check and the session source for the data itself.
type Store interface {
	core.Source
	GetSurvey(ctx context.Context, surveyID string) (survey.Survey, error)
}

type Handler struct {
	Store        Store
	Cache        Cache
	PublicURL    string
	PollInterval time.Duration
	Now          func() time.Time
	Upgrader     websocket.Upgrader
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) newSession() *core.Session {
	return core.NewSession(h.Store, core.WithNotifier(core.LogNotifier{}), core.WithClock(h.now))
}

// load runs a strict session load for the caller's survey. The session is
// returned ready to export.
func (h *Handler) load(ctx context.Context, surveyID string) (*core.Session, error) {
	if _, err := surveys.OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		return nil, err
	}

	session := h.newSession()
	if err := session.Load(ctx, surveyID); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

func (h *Handler) GetResultsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := surveys.OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	if h.Cache != nil {
		view, err := h.Cache.Get(ctx, surveyID)
		if err != nil {
			log.Printf("error reading results cache: %s", err)
		}
		if view != nil {
			writeResults(responseWriter, view)
			return
		}
	}

	session := h.newSession()
	defer session.Close()

	if err := session.Load(ctx, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	view := NewResultsView(session.Snapshot(), h.now())
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, surveyID, view); err != nil {
			log.Printf("error caching results for survey %s: %s", surveyID, err)
		}
	}

	writeResults(responseWriter, view)
}

func (h *Handler) ExportResultsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	session, err := h.load(request.Context(), chi.URLParam(request, "surveyID"))
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	defer session.Close()

	if _, err := session.Export(core.HTTPDownloader{ResponseWriter: responseWriter}); err != nil {
		log.Printf("error exporting results: %s", err)
	}
}

func (h *Handler) ReportResultsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	session, err := h.load(request.Context(), chi.URLParam(request, "surveyID"))
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	defer session.Close()

	if _, err := session.ExportReport(core.HTTPDownloader{ResponseWriter: responseWriter}); err != nil {
		log.Printf("error rendering results report: %s", err)
		jsonutil.WriteErrorResponse(responseWriter, err)
	}
}

// LiveResultsHandler streams the survey's results over a websocket: one frame
// on connect and one after every refresh. The poller stops when the socket
// closes.
func (h *Handler) LiveResultsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := surveys.OwnedSurvey(request.Context(), h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	conn, err := h.Upgrader.Upgrade(responseWriter, request, nil)
	if err != nil {
		log.Printf("error upgrading results connection: %s", err)
		return
	}
	defer conn.Close()

	// the request context ends with the handler, so the socket gets its own
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := h.newSession()
	defer session.Close()

	updates, unsubscribe := session.Subscribe()
	defer unsubscribe()

	if err := session.Load(ctx, surveyID); err != nil {
		snap := session.Snapshot()
		_ = writeFrame(conn, LiveMessage{State: snap.State, Error: snap.Error})
		return
	}

	session.Poll(ctx, surveyID, h.PollInterval)

	go readPump(conn, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			message := LiveMessage{State: snap.State, Error: snap.Error, Results: NewResultsView(snap, h.now())}
			if err := writeFrame(conn, message); err != nil {
				log.Printf("error writing live results: %s", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ShareHandler serves a QR code pointing at the survey's public page.
func (h *Handler) ShareHandler(responseWriter http.ResponseWriter, request *http.Request) {
	surveyID := chi.URLParam(request, "surveyID")

	s, err := h.Store.GetSurvey(request.Context(), surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	if !s.IsPublished {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrNotFound)
		return
	}

	png, err := qrcode.Encode(ShareURL(h.PublicURL, s.ID), qrcode.Medium, qrSize)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, fmt.Errorf("error generating qr code: %w", err))
		return
	}

	responseWriter.Header().Set("Content-Type", "image/png")
	responseWriter.Header().Set("Cache-Control", "public, max-age=3600")
	responseWriter.WriteHeader(http.StatusOK)
	if _, err := responseWriter.Write(png); err != nil {
		log.Printf("error writing qr code: %s", err)
	}
}

// ShareURL is the page respondents open to answer a survey.
func ShareURL(publicURL, surveyID string) string {
	return fmt.Sprintf("%s/surveys/%s", publicURL, surveyID)
}

func writeResults(responseWriter http.ResponseWriter, view *ResultsView) {
	response := jsonutil.Response{
		Status:  "success",
		Message: "results retrieved successfully",
		Data:    view,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func writeFrame(conn *websocket.Conn, message LiveMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// readPump discards client frames and cancels the stream once the peer goes
// away or stops answering pings.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
