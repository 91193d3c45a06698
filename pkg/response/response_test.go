package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"业务错误", apperrors.New(apperrors.ErrCodeDuplicateRecord, "重复"), http.StatusConflict, apperrors.ErrCodeDuplicateRecord},
		{"未知错误按内部错误处理", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
		{"存储不可用", apperrors.ErrStorageUnavailable.WithErr(errors.New("timeout")), http.StatusServiceUnavailable, apperrors.ErrCodeStorageUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode(t, w).Code)
		})
	}
}

func TestError_Details(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	details := []map[string]string{{"field": "price", "message": "价格必须是大于等于0的数字"}}
	Error(c, apperrors.New(apperrors.ErrCodeValidationFailed, "参数校验失败").WithDetails(details))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"price"`)
}

func TestNewPageData(t *testing.T) {
	assert.Equal(t, 3, NewPageData(nil, 21, 1, 10).TotalPages)
	assert.Equal(t, 2, NewPageData(nil, 20, 1, 10).TotalPages)
	assert.Equal(t, 0, NewPageData(nil, 0, 1, 10).TotalPages)
	assert.Equal(t, 0, NewPageData(nil, 5, 1, 0).TotalPages)
}
