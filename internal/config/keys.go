package config

// Selector keys referenced by the crawl logic. Values in the selector
// file are XPath expressions; keys used inside another element's scope
// should start with "." so they resolve relative to that element.
const (
	// Authentication surfaces.
	KeyModalSignInButton        = "modal_sign_in_button"
	KeyAuthInputUsername        = "auth_input_username"
	KeyAuthInputPassword        = "auth_input_password"
	KeyAuthSubmitButton         = "auth_submit_button"
	KeyAuthSubmitButtonFallback = "auth_submit_button_fallback"
	KeySignUpFormSignInLink     = "sign_up_form_sign_in_link"
	KeyInputSubmitSignIn        = "input_submit_sign_in"
	KeyEmailVerificationPin     = "input_email_verification_pin"
	KeyEmailPinSubmitButton     = "email_pin_submit_button"
	KeyMessagingModalExpanded   = "messaging_modal_expanded"
	KeyCloseConversationWindow  = "close_conversation_window"

	// Company page and employee listing.
	KeyCompanyName             = "company_name"
	KeyLinkToAllEmployees      = "link_to_all_employees"
	KeyGlobalFooter            = "global_footer"
	KeyPaginationCurrent       = "employees_pagination_current"
	KeyPaginationNext          = "employees_pagination_next"
	KeyProfilesList            = "profiles_list"
	KeyProfileLink             = "profile_link"
	KeyProfileLinkActorName    = "profile_link_actor_name"
	KeyProfileLinkPositionName = "profile_link_position_name"

	// Profile page.
	KeyProfileName                 = "profile_name"
	KeyProfilePosition             = "profile_position"
	KeyProfileAbout                = "profile_about"
	KeyProfileAboutShowMore        = "profile_about_show_more_button"
	KeyProfileShowMoreExperience   = "profile_show_more_experience_button"
	KeyProfileExperienceRows       = "profile_experience_rows"
	KeyProfileShowMoreRole         = "profile_show_more_role_button"
	KeyCompanyNameOnePosition      = "profile_company_name_with_one_position"
	KeyCompanyNameManyPositions    = "profile_company_name_with_many_positions"
	KeyCompanySummaryDuration      = "profile_company_summary_duration_with_many_positions"
	KeyExperienceRoles             = "profile_experience_role_for_many_positions"
	KeyPositionNameOnePosition     = "profile_position_name_for_one_position"
	KeyPositionNameManyPositions   = "profile_position_name_for_many_positions"
	KeyPositionLocation            = "profile_position_location"
	KeyPositionDescription         = "profile_position_description"
	KeyPositionDescriptionShowMore = "profile_position_description_show_more"
	KeyDateRange                   = "profile_date_range"
	KeyDateDuration                = "profile_date_duration"
)

// Delay bound keys, stored alongside the selectors.
const (
	keyDelayStart = "random_sleep_seconds_start"
	keyDelayStop  = "random_sleep_seconds_stop"
)
