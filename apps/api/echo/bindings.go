package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindJSON decodes the request body into data, naming the target type in the error.
func bindJSON(ctx echo.Context, data interface{}, name string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to "+name)
	}
	return nil
}

// paramID reads the ":id" path parameter. Malformed ids match nothing.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// queryFlag reports whether the query parameter name holds a true value ("true", "1", ...).
func queryFlag(ctx echo.Context, name string) bool {
	v, err := strconv.ParseBool(ctx.QueryParam(name))
	return err == nil && v
}

type SuccessResponse struct {
	Success string `json:"success"`
}
