package filters

// EntityVehicle tags vehicle registrations.
const EntityVehicle = "vehicle"

var (
	vehicleRequest = []string{
		"event_year", "type", "vehicle_class", "vehicle_year",
		"vehicle_make", "vehicle_model", "vehicle_color", "vehicle_type",
		"rental_number", "license_number", "license_state", "request_comment",
	}
	vehicleIssued = []string{
		"driving_sticker", "sticker_number", "fuel_chit", "ranger_logo",
		"amber_light", "team_assignment",
	}
	vehicleMaintenance = []string{"maintenance_notes", "last_service_date", "odometer"}
)

// VehiclePolicy governs vehicle registrations. A requester creating a
// vehicle owns it for the create call, so the request fields are writable
// before person_id is set. Only ADMIN assigns person_id.
func VehiclePolicy() *Policy {
	return &Policy{
		Entity: EntityVehicle,
		Outbound: []FieldGroup{
			Public("vehicle", append(append([]string{"person_id"}, vehicleRequest...), vehicleIssued...)...),
			Public("review", "status", "response_comment"),
			Public("paperwork", "org_vehicle_insurance", "signed_motorpool_agreement",
				"signed_personal_vehicle_agreement", "ignore_mvr", "ignore_pvr"),
			RolesOnly("notes", []Role{RoleAdmin}, "notes"),
			RolesOnly("maintenance", []Role{RoleAdmin, RoleManage}, vehicleMaintenance...),
		},
		Inbound: []FieldGroup{
			RolesOnly("reassign", []Role{RoleAdmin}, "person_id"),
			OwnerOnly("vehicle", vehicleRequest...),
			RolesOnly("admin", []Role{RoleAdmin},
				append([]string{"notes", "status", "response_comment"}, vehicleIssued...)...),
			RolesOnly("maintenance", []Role{RoleAdmin, RoleManage}, vehicleMaintenance...),
		},
	}
}
