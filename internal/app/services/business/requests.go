package business

import (
	"net/http"
	"strconv"

	"github.com/TelconGH/admin_portal/internal/upstream"
)

func listSpec(token string, page, perPage int) upstream.RequestSpec {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 15
	}
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/businesses",
		Headers: upstream.JSONHeaders(token),
		Query: map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		},
	}
}

func usersSpec(token string, businessID int64, page, perPage int) upstream.RequestSpec {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 15
	}
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/user-business/by-business/" + strconv.FormatInt(businessID, 10),
		Headers: upstream.JSONHeaders(token),
		Query: map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		},
	}
}
