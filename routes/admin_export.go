package routes

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/storage"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"github.com/kataras/iris/v12"
)

type exportJob struct {
	ID        string `json:"id"`
	Status    string `json:"status"` // pending, processing, done, failed
	CreatedAt int64  `json:"created_at"`
	RowCount  int    `json:"row_count"`

	csv []byte
}

var (
	exportJobs   = map[string]*exportJob{}
	exportJobsMu sync.Mutex
)

// POST /api/admin/export { locations: []string }
//
// Kicks off an async CSV export of reservations, optionally limited to a
// set of location ids. Poll the job, then download the file.
func AdminCreateExport(ctx iris.Context) {
	var body struct {
		Locations []string `json:"locations"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "body must be JSON")
		return
	}

	id := time.Now().Format("20060102150405.000000")
	job := &exportJob{ID: id, Status: "pending", CreatedAt: time.Now().Unix()}
	exportJobsMu.Lock()
	exportJobs[id] = job
	exportJobsMu.Unlock()

	go runExport(job, body.Locations)

	ctx.JSON(iris.Map{"data": iris.Map{"id": id, "status": job.Status}})
}

func runExport(job *exportJob, locationIDs []string) {
	exportJobsMu.Lock()
	job.Status = "processing"
	exportJobsMu.Unlock()

	query := storage.DB.Order("location_id").Order("created_at DESC")
	if len(locationIDs) > 0 {
		query = query.Where("location_id IN ?", locationIDs)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		exportJobsMu.Lock()
		job.Status = "failed"
		exportJobsMu.Unlock()
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{
		"Confirmation ID", "Location ID", "Location Name",
		"Customer Name", "Email", "Phone",
		"Qty", "Pickup Date", "Pickup Time",
	})
	for _, reservation := range reservations {
		writer.Write([]string{
			reservation.ConfirmationID,
			reservation.LocationID,
			reservation.LocationName,
			reservation.CustomerName(),
			reservation.Email,
			reservation.Phone,
			strconv.Itoa(reservation.Quantity),
			reservation.PickupDate,
			reservation.PickupTime,
		})
	}
	writer.Flush()

	exportJobsMu.Lock()
	job.csv = buf.Bytes()
	job.RowCount = len(reservations)
	job.Status = "done"
	exportJobsMu.Unlock()
}

// GET /api/admin/export/{id}
func AdminGetExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")

	// Copy the fields under the lock; runExport mutates the job concurrently.
	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	var snapshot exportJob
	if ok {
		snapshot = exportJob{
			ID:        job.ID,
			Status:    job.Status,
			CreatedAt: job.CreatedAt,
			RowCount:  job.RowCount,
		}
	}
	exportJobsMu.Unlock()

	if !ok {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "job not found")
		return
	}
	ctx.JSON(iris.Map{"data": snapshot})
}

// GET /api/admin/export/{id}/download
func AdminDownloadExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")

	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	var status string
	var file []byte
	if ok {
		status = job.Status
		file = job.csv
	}
	exportJobsMu.Unlock()

	if !ok {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "job not found")
		return
	}
	if status != "done" {
		utils.JSONError(ctx, http.StatusConflict, "not_ready", "export is "+status)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="reservations-`+id+`.csv"`)
	ctx.ContentType("text/csv")
	ctx.Write(file)
}
