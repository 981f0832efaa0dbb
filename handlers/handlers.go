// Package handlers binds the HTTP surface to the conversation store, the
// bill catalog, the agent adapter and the session gate.
package handlers

import (
	"strings"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/agent"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/catalog"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/search"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/session"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/sse"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/store"
)

type Handler struct {
	Store    *store.Store
	Catalog  *catalog.Loader
	Agent    *agent.Client
	Sessions *session.Manager
	Streams  *sse.Registry
}

func New(s *store.Store, cat *catalog.Loader, client *agent.Client, sessions *session.Manager, streams *sse.Registry) *Handler {
	return &Handler{
		Store:    s,
		Catalog:  cat,
		Agent:    client,
		Sessions: sessions,
		Streams:  streams,
	}
}

var (
	representativeKeywords = []string{"representative", "congressman", "senator", "my rep"}
	billKeywords           = []string{"bill", "legislation", "search", "climate", "analyze"}
)

// detectDirective decides which inline follow-up widget, if any, the
// assistant's answer should request, based on the user's message. An
// address request wins over a bills table.
func (h *Handler) detectDirective(userText string) models.Directive {
	lower := strings.ToLower(userText)

	for _, kw := range representativeKeywords {
		if strings.Contains(lower, kw) {
			return models.RequestAddress()
		}
	}

	for _, kw := range billKeywords {
		if strings.Contains(lower, kw) {
			if bills := h.matchingBills(userText); len(bills) > 0 {
				return models.ShowBills(bills)
			}
			break
		}
	}

	return models.NoDirective()
}

// matchingBills turns the top fuzzy matches for the user's message into
// display bills for a ShowBills directive.
func (h *Handler) matchingBills(userText string) []models.Bill {
	ranked := search.Search(userText, h.Catalog.Documents())
	bills := make([]models.Bill, 0, len(ranked))
	for _, doc := range ranked {
		bills = append(bills, models.Bill{
			ID:         doc.OriginalName,
			Name:       doc.Title,
			Summary:    doc.Summary,
			Similarity: doc.Score,
		})
	}
	return bills
}
