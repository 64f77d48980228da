package routes

// Base returns the API base path.
func Base() string {
	return "/api"
}

// Festivals returns the festival listing path (e.g., "/api/festivals").
func Festivals() string {
	return Base() + "/festivals"
}

// Health returns the unversioned health path probed by load balancers.
func Health() string {
	return "/health"
}

// Images returns the static image mount point.
func Images() string {
	return "/images"
}

// Docs returns the Swagger UI mount point.
func Docs() string {
	return "/docs"
}
