package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfeldman/wedsite/internal/models"
	"github.com/rfeldman/wedsite/internal/storage"
	"github.com/rfeldman/wedsite/internal/validation"
)

// defaultImage is used when an item is created without an image URL.
const defaultImage = "/images/placeholder.png"

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.registry.GetAllItems(r.Context())
	if err != nil {
		slog.Error("failed to load registry items", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load registry items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := s.registry.GetItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		slog.Error("failed to fetch registry item", "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch item data")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = nil
	}

	input, err := validation.ValidateContributeInput(body)
	if err != nil {
		s.metrics.RecordContribution("rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.registry.ContributeToItem(r.Context(), input.ItemID, storage.Contribution{
		Name:   input.Name,
		Amount: input.Amount,
	})
	if err != nil {
		status, message := contributionError(err)
		if status == http.StatusInternalServerError {
			s.metrics.RecordContribution("failed")
			slog.Error("failed to process contribution", "item_id", input.ItemID, "error", err)
		} else {
			s.metrics.RecordContribution("rejected")
		}
		writeError(w, status, message)
		return
	}

	s.metrics.RecordContribution("accepted")
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = nil
	}

	input, err := validation.ValidateAddItemInput(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &models.RegistryItem{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Image:       input.Image,
		VendorURL:   input.VendorURL,
		Quantity:    input.Quantity,
		IsGroupGift: input.IsGroupGift,
	}
	if item.Image == "" {
		item.Image = defaultImage
	}

	if err := s.registry.CreateItem(r.Context(), item); err != nil {
		slog.Error("failed to add registry item", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add item to registry")
		return
	}

	s.metrics.IncrementItemsCreated()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Item added successfully",
		"item":    item,
	})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	update, ok := itemUpdateFromBody(body)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing or invalid required fields (name, price, quantity)")
		return
	}

	item, err := s.registry.UpdateItem(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		slog.Error("failed to update registry item", "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		slog.Error("failed to delete registry item", "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// itemUpdateFromBody builds a partial update from an admin edit payload.
// Name, price, and quantity are mandatory on every edit; the remaining
// fields are applied only when present. A contributors field, if sent, is
// silently ignored: contributions only enter through the transaction.
func itemUpdateFromBody(body map[string]any) (storage.ItemUpdate, bool) {
	update := storage.ItemUpdate{}

	name, ok := validation.ValidString(body["name"])
	if !ok {
		return update, false
	}
	price, ok := validation.PositiveNumber(body["price"])
	if !ok {
		return update, false
	}
	quantity, ok := validation.PositiveInteger(body["quantity"])
	if !ok {
		return update, false
	}

	update.Name = &name
	update.Price = &price
	update.Quantity = &quantity

	if raw, ok := body["description"]; ok {
		if s, ok := raw.(string); ok {
			update.Description = &s
		}
	}
	if s, ok := validation.ValidString(body["category"]); ok {
		update.Category = &s
	}
	if s, ok := validation.ValidString(body["image"]); ok {
		update.Image = &s
	}
	if raw, ok := body["vendorUrl"]; ok {
		if s, ok := raw.(string); ok {
			update.VendorURL = &s
		}
	}
	if raw, ok := body["isGroupGift"]; ok {
		flag := validation.GroupGiftFlag(raw)
		update.IsGroupGift = &flag
	}

	return update, true
}
