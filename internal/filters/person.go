package filters

// EntityPerson tags person records.
const EntityPerson = "person"

var (
	personNameGender = []string{"first_name", "mi", "last_name", "gender", "pronouns"}
	personEmail      = []string{"email"}
	personInfo       = []string{
		"street1", "street2", "apt", "city", "state", "zip", "country",
		"home_phone", "alt_phone", "birthdate", "camp_location",
		"teeshirt_size_style", "longsleeveshirt_size_style",
	}
	personEmergency = []string{"emergency_contact"}
	personBarcode   = []string{"bpguid", "sfuid"}
	personEvent     = []string{"on_site", "arrival_date", "behavioral_agreement", "has_note_on_file"}
	personLAM       = []string{"lam_status", "lam_username"}
	personSMS       = []string{"sms_on_playa", "sms_off_playa", "sms_verified"}
	personMentor    = []string{"mentors_notes", "mentors_flag"}
)

// PersonPolicy governs person records. The owner is the person themself and
// ADMIN holders are granted every group.
func PersonPolicy() *Policy {
	return &Policy{
		Entity:        EntityPerson,
		AdminOverride: true,
		Outbound: []FieldGroup{
			Public("name_gender", personNameGender...),
			Public("account", "callsign", "callsign_approved", "formerly_known_as",
				"status", "status_date", "vintage", "date_verified", "created_at"),
			Public("roles", "roles", "teams"),
			Public("callsigns", "callsign_pronounce"),
			OwnerOr("email", []Role{RoleViewPII, RoleViewEmail, RoleVC}, personEmail...),
			OwnerOr("personal_info", []Role{RoleViewPII, RoleVC}, personInfo...),
			OwnerOr("emergency_contact", []Role{RoleViewPII, RoleVC, RoleManage}, personEmergency...),
			OwnerOr("barcode", []Role{RoleViewPII, RoleEditBMIDs}, personBarcode...),
			OwnerOr("event", []Role{RoleManage, RoleVC}, personEvent...),
			OwnerOr("lam", []Role{RoleMentor, RoleTrainer, RoleVC}, personLAM...),
			OwnerOr("sms", []Role{RoleAdmin}, personSMS...),
			RolesOnly("mentor", []Role{RoleMentor, RoleTrainer, RoleVC}, personMentor...),
		},
		Inbound: []FieldGroup{
			OwnerOr("name_gender", []Role{RoleVC}, personNameGender...),
			OwnerOr("email", []Role{RoleVC}, personEmail...),
			OwnerOr("personal_info", []Role{RoleVC}, personInfo...),
			OwnerOr("emergency_contact", []Role{RoleVC}, personEmergency...),
			OwnerOr("sms", []Role{RoleVC}, "sms_on_playa", "sms_off_playa"),
			RolesOnly("account", []Role{RoleVC}, "callsign", "callsign_approved",
				"formerly_known_as", "status", "vintage", "date_verified"),
			RolesOnly("mentor", []Role{RoleVC, RoleMentor}, personMentor...),
			RolesOnly("barcode", []Role{RoleEditBMIDs}, personBarcode...),
			RolesOnly("event", []Role{RoleManage}, personEvent...),
			OwnerOnly("lam", "lam_status"),
		},
	}
}
