package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"campusai/models"
)

// SearchHandler ranks the document collection against the q parameter
func (c *Controller) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	docs := c.chatbot.Search(query)

	writeJSON(w, http.StatusOK, models.SearchResponse{
		BaseResponse: models.NewSuccess(),
		Query:        query,
		Documents:    docs,
		Count:        len(docs),
	})
}

// DocumentHandler returns a single document by id
func (c *Controller) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, ok := c.chatbot.Document(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewError("document not found: "+id))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
