package rbac

import (
	"net/http"
	"strconv"

	"github.com/TelconGH/admin_portal/internal/upstream"
)

func listSpec(token, resource string, page, perPage int) upstream.RequestSpec {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 15
	}
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/" + resource,
		Headers: upstream.JSONHeaders(token),
		Query: map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		},
	}
}

func getSpec(token, resource string, id int64) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/" + resource + "/" + strconv.FormatInt(id, 10),
		Headers: upstream.JSONHeaders(token),
	}
}

func createSpec(token, resource, name string, permissions []string) upstream.RequestSpec {
	body := map[string]any{"name": name}
	if len(permissions) > 0 {
		body["permissions"] = permissions
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/" + resource,
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}

func updateSpec(token, resource string, id int64, name string, permissions []string) upstream.RequestSpec {
	body := map[string]any{"name": name}
	if len(permissions) > 0 {
		body["permissions"] = permissions
	}
	return upstream.RequestSpec{
		Method:  http.MethodPut,
		Path:    "/" + resource + "/" + strconv.FormatInt(id, 10),
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}

func deleteSpec(token, resource string, id int64) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodDelete,
		Path:    "/" + resource + "/" + strconv.FormatInt(id, 10),
		Headers: upstream.JSONHeaders(token),
	}
}

func assignSpec(token, path string, userID int64, name string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    path,
		Headers: upstream.JSONHeaders(token),
		Body: map[string]any{
			"user_id": userID,
			"name":    name,
		},
	}
}
