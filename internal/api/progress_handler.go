package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ProgressHandler serves the read-only views derived from plan and logs.
type ProgressHandler struct {
	appService service.AppService
}

func NewProgressHandler(appService service.AppService) *ProgressHandler {
	return &ProgressHandler{appService: appService}
}

type CalendarResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Days  []domain.CalendarDay `json:"days"`
}

// GetToday godoc
// @Summary Today's plan day and log
// @Tags Workouts
// @Produce json
// @Success 200 {object} domain.DayWorkout
// @Router /workouts/today [get]
func (h *ProgressHandler) GetToday(c *gin.Context) {
	c.JSON(http.StatusOK, h.appService.TodaysWorkout())
}

// GetWorkoutForDate godoc
// @Summary Plan day and log of a date
// @Tags Workouts
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.DayWorkout
// @Failure 400 {object} gin.H "Invalid date"
// @Router /workouts/{date} [get]
func (h *ProgressHandler) GetWorkoutForDate(c *gin.Context) {
	dw, err := h.appService.WorkoutForDate(c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dw)
}

// GetStatistics godoc
// @Summary Progress statistics
// @Tags Progress
// @Produce json
// @Success 200 {object} domain.Statistics
// @Router /statistics [get]
func (h *ProgressHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.appService.Statistics())
}

// GetCalendar godoc
// @Summary Month grid with workout status per day
// @Description Defaults to the current month. The grid always has 42 days starting on a Sunday.
// @Tags Progress
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} CalendarResponse
// @Failure 400 {object} gin.H "Invalid year or month"
// @Router /calendar [get]
func (h *ProgressHandler) GetCalendar(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid year format")
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid month format")
			return
		}
		month = n
	}

	days, err := h.appService.Calendar(year, time.Month(month))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CalendarResponse{Year: year, Month: month, Days: days})
}
