package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	RouteUsers      = RouteApiV1 + "/users"
	RouteUser       = RouteUsers + "/:user_id"
	RouteUserStatus = RouteUser + "/status"

	RouteUserStatuses   = RouteApiV1 + "/user-statuses"
	RouteUserStatusByID = RouteUserStatuses + "/:status_id"

	RouteBinaryContents        = RouteApiV1 + "/binary-contents"
	RouteBinaryContent         = RouteBinaryContents + "/:content_id"
	RouteBinaryContentDownload = RouteBinaryContent + "/download"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
