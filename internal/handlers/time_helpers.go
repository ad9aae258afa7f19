package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDate reads a 2006-01-02 date and pins it to midnight UTC, the
// normalization the appointment store uses.
func parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}
