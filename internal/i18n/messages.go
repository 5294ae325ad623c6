package i18n

// messages 站点文案目录，按语言分组
var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.validation_failed":      "Validation failed",
		"error.unauthorized":           "Authentication required",
		"error.forbidden":              "You do not have permission to perform this action",
		"error.auth_header_missing":    "Authorization header missing",
		"error.auth_header_invalid":    "Authorization header invalid",
		"error.token_invalid":          "Session token is invalid or expired",
		"error.jwt_secret_missing":     "Authentication is not configured",
		"error.user_disabled":          "Account is disabled",
		"error.internal":               "Internal server error",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Service temporarily unavailable",
		"error.login_too_many":         "Too many login attempts, please retry in %d seconds",
		"error.track_too_many":         "Too many tracking lookups, please retry in %d seconds",
		"error.email_taken":            "Email is already registered",
		"error.invalid_credentials":    "Invalid email or password",
		"error.user_id_invalid":        "Invalid user identity",
		"error.user_id_type_invalid":   "Invalid user identity type",

		"error.pickup_fetch_failed":    "Failed to fetch pickup request",
		"error.pickup_create_failed":   "Failed to create pickup request",
		"error.reward_fetch_failed":    "Failed to fetch rewards",
		"error.user_fetch_failed":      "Failed to fetch user",
		"error.dashboard_fetch_failed": "Failed to fetch dashboard overview",
		"error.save_failed":            "Failed to save changes",
		"error.register_failed":        "Registration failed",
		"error.login_failed":           "Login failed",

		"error.pickup_not_found":        "Pickup request not found",
		"error.pickup_invalid_status":   "Pickup request is not in a state that allows this operation",
		"error.pickup_not_owner":        "Only the requester may perform this action",
		"error.pickup_not_assigned":     "Pickup is not assigned to this recycler",
		"error.pickup_recycler_needed":  "A recycler must be assigned before scheduling",
		"error.pickup_date_past":        "Scheduled date must be in the future",
		"error.pickup_weight_invalid":   "Actual weight must be greater than zero",
		"error.pickup_rating_invalid":   "Rating must be between 1 and 5",
		"error.pickup_not_completed":    "Pickup must be completed before rating",
		"error.pickup_already_rated":    "Pickup has already been rated",
		"error.pickup_items_required":   "At least one e-waste item is required",
		"error.pickup_delete_forbidden": "Only pending pickups can be deleted",

		"error.item_not_found":           "E-waste item not found",
		"error.item_device_type_invalid": "Unsupported device type",

		"error.reward_not_found":     "Reward not found",
		"error.reward_not_active":    "Reward is not active",
		"error.reward_expired":       "Reward has expired",
		"error.reward_already_exist": "Reward already issued for this pickup",

		"error.user_not_found":     "User not found",
		"error.recycler_not_found": "Recycler not found",

		"msg.pickup_created":   "Pickup request created",
		"msg.pickup_scheduled": "Pickup scheduled",
		"msg.pickup_completed": "Pickup completed",
		"msg.pickup_cancelled": "Pickup cancelled",
		"msg.pickup_deleted":   "Pickup request deleted",
		"msg.reward_redeemed":  "Reward redeemed",
	},
	LocaleHI: {
		"error.unauthorized":          "प्रमाणीकरण आवश्यक है",
		"error.forbidden":             "आपको यह कार्य करने की अनुमति नहीं है",
		"error.internal":              "आंतरिक सर्वर त्रुटि",
		"error.rate_limited":          "बहुत अधिक अनुरोध, कृपया %d सेकंड बाद पुनः प्रयास करें",
		"error.pickup_not_found":      "पिकअप अनुरोध नहीं मिला",
		"error.pickup_invalid_status": "पिकअप अनुरोध इस कार्रवाई की अनुमति नहीं देता",
		"error.reward_not_found":      "रिवॉर्ड नहीं मिला",
		"error.reward_expired":        "रिवॉर्ड की अवधि समाप्त हो गई है",
		"msg.pickup_created":          "पिकअप अनुरोध बनाया गया",
		"msg.reward_redeemed":         "रिवॉर्ड भुनाया गया",
	},
}
