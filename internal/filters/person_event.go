package filters

// EntityPersonEvent tags per-year person event records.
const EntityPersonEvent = "person_event"

var personEventLMS = []string{"lms_course_id", "lms_enrollment_id", "lms_enrolled_at"}

// PersonEventPolicy governs person_event records. ADMIN gets no blanket
// override here; admin-only groups list the role explicitly.
func PersonEventPolicy() *Policy {
	return &Policy{
		Entity: EntityPersonEvent,
		Outbound: []FieldGroup{
			Public("keys", "person_id", "year"),
			Public("status", "may_request_stickers", "org_vehicle_insurance",
				"signed_motorpool_agreement", "signed_personal_vehicle_agreement",
				"asset_authorized", "timesheet_confirmed", "timesheet_confirmed_at",
				"sandman_affidavit", "ignore_mvr", "ignore_pvr",
				"pii_started_at", "pii_finished_at"),
			RolesOnly("lms", []Role{RoleAdmin}, personEventLMS...),
		},
		Inbound: []FieldGroup{
			RolesOnly("admin", []Role{RoleAdmin}, "may_request_stickers",
				"org_vehicle_insurance", "signed_motorpool_agreement",
				"signed_personal_vehicle_agreement", "sandman_affidavit",
				"pii_started_at", "pii_finished_at"),
			RolesOnly("lms", []Role{RoleAdmin}, personEventLMS...),
			OwnerOr("user_vehicle", []Role{RoleAdmin}, "ignore_mvr", "ignore_pvr"),
			RolesOnly("hq", []Role{RoleManage, RoleEventManagement, RoleAdmin}, "asset_authorized"),
			OwnerOr("timesheet", []Role{RoleTimesheetManagement, RoleAdmin}, "timesheet_confirmed"),
		},
	}
}
