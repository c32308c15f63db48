package filters

// EntityTimesheet tags timesheet entries.
const EntityTimesheet = "timesheet"

// TimesheetPolicy governs timesheet entries. It declares no outbound groups:
// reads use the model's default field list.
func TimesheetPolicy() *Policy {
	return &Policy{
		Entity: EntityTimesheet,
		Inbound: []FieldGroup{
			OwnerOr("user", []Role{RoleTimesheetManagement},
				"notes", "desired_position_id", "desired_on_duty", "desired_off_duty"),
			RolesOnly("duty", []Role{RoleShiftManagement, RoleAdmin}, "on_duty", "off_duty", "position_id"),
			RolesOnly("wrangler", []Role{RoleTimesheetManagement}, "reviewer_notes", "review_status", "is_non_ranger"),
		},
	}
}
