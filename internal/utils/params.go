package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	ProjectIDParam      = "project_id"
	MemberIDParam       = "member_id"
	TaskIDParam         = "task_id"
	MessageIDParam      = "message_id"
	NotificationIDParam = "notification_id"
)

// GetIDParam parses a positive numeric path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("%s not found", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}

// GetIDParams parses several path parameters in order.
func GetIDParams(ctx *gin.Context, names ...string) ([]uint, error) {
	ids := make([]uint, 0, len(names))

	for _, name := range names {
		id, err := GetIDParam(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
