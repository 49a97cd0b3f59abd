package inspection

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func createPublicationHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pub Publication
		if err := decodeBody(r, &pub); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&pub)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func createFromTemplateHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Publication
			TemplateID string          `json:"templateId"`
			Params     []TemplateParam `json:"params"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.CreateFromTemplate(&body.Publication, body.TemplateID, body.Params)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updatePublicationHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pub Publication
		if err := decodeBody(r, &pub); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &pub)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getPublicationHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pub, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

// listPublicationsHandler lists publications filtered by ownerId, type,
// priority, read, or a scheduled window, combinable where the service
// supports it.
func listPublicationsHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		ownerID := query.Get("ownerId")
		notifType := NotificationType(query.Get("type"))
		priority := Priority(query.Get("priority"))
		read := query.Get("read")

		switch {
		case ownerID != "" && notifType != "":
			pubs, err := svc.ListByOwnerAndType(ownerID, notifType)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case ownerID != "" && read != "":
			pubs, err := svc.ListByOwnerAndRead(ownerID, read == "true")
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case ownerID != "" && query.Get("start") != "":
			start, end, err := timeRangeParams(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
				return
			}
			pubs, err := svc.NotificationHistory(ownerID, start, end)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case ownerID != "":
			pubs, err := svc.ListByOwner(ownerID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case notifType != "" && priority != "":
			pubs, err := svc.ListByTypeAndPriority(notifType, priority)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case notifType != "":
			pubs, err := svc.ListByType(notifType)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case priority != "":
			pubs, err := svc.ListByPriority(priority)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		case read != "":
			pubs, err := svc.ListByRead(read == "true")
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		default:
			start, end, err := timeRangeParams(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
				return
			}
			pubs, err := svc.ListByDateRange(start, end)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, pubs)
		}
	}
}

func deletePublicationHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func markReadHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pub, err := svc.MarkAsRead(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func markUnreadHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pub, err := svc.MarkAsUnread(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func markAllReadHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.MarkAllAsRead(chi.URLParam(r, "ownerId")); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func updateDeliveryStatusHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status DeliveryStatus `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		pub, err := svc.UpdateDeliveryStatus(chi.URLParam(r, "id"), body.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func schedulePublicationHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ScheduledFor time.Time `json:"scheduledFor"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		pub, err := svc.SchedulePublication(chi.URLParam(r, "id"), body.ScheduledFor)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func sendImmediateHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pub Publication
		if err := decodeBody(r, &pub); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		sent, err := svc.SendImmediate(&pub)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sent)
	}
}

func sendBatchHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pubs []Publication
		if err := decodeBody(r, &pubs); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		sent, err := svc.SendBatch(pubs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sent)
	}
}

func resendFailedHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pub, err := svc.ResendFailed(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func deleteExpiredHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cutoff := time.Now()
		if v := r.URL.Query().Get("before"); v != "" {
			parsed, err := parseTime(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid before: %v", err))
				return
			}
			cutoff = parsed
		}
		if err := svc.DeleteExpired(cutoff); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func unreadCountHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.CountUnread(chi.URLParam(r, "ownerId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
	}
}

func deliveryReportHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		report, err := svc.GenerateDeliveryReport(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func engagementHandler(svc *PublicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := svc.OwnerEngagementMetrics(chi.URLParam(r, "ownerId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, metrics)
	}
}
