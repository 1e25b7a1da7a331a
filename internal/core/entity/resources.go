package entity

import aq "villagevisits/internal/core/autoquery"

// textFields builds a Fields table where every column filters as text
func textFields(cols ...string) aq.Fields {
	f := make(aq.Fields, len(cols))
	for _, c := range cols {
		f[c] = aq.String
	}
	return f
}

// Query surfaces per entity
var (
	VillageResource = aq.Resource{
		Fields:      textFields("id", "province", "district", "sector", "cell", "village", "createdAt", "updatedAt"),
		SortAllow:   []string{"province", "district", "sector", "cell", "village", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Asc("village")},
		Select:      []string{"id", "province", "district", "sector", "cell", "village", "createdAt", "updatedAt"},
		Keys:        []string{"id"},
	}

	UserResource = aq.Resource{
		Fields:      textFields("id", "firstname", "surname", "email", "NID", "gender", "phoneNumber", "role", "createdAt", "updatedAt"),
		SortAllow:   []string{"role", "firstname", "surname", "gender", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Asc("role"), aq.Asc("firstname"), aq.Desc("createdAt")},
		Select:      []string{"id", "firstname", "surname", "email", "NID", "gender", "phoneNumber", "role", "createdAt", "updatedAt"},
		Keys:        []string{"id"},
	}

	ChiefResource = aq.Resource{
		Fields:      textFields("id", "username", "dateOfBirth", "nationality", "profession", "createdAt", "updatedAt"),
		SortAllow:   []string{"username", "dateOfBirth", "nationality", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Asc("username"), aq.Desc("createdAt")},
		Select:      []string{"id", "username", "dateOfBirth", "nationality", "profession", "createdAt", "updatedAt"},
		Keys:        []string{"id", "userId", "villageId"},
	}

	ResidentResource = aq.Resource{
		Fields:      textFields("id", "dateOfBirth", "nationality", "profession", "maritalStatus", "createdAt", "updatedAt"),
		SortAllow:   []string{"dateOfBirth", "nationality", "maritalStatus", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Desc("createdAt")},
		Select:      []string{"id", "dateOfBirth", "nationality", "profession", "maritalStatus", "createdAt", "updatedAt"},
		Keys:        []string{"id", "userId", "villageId"},
	}

	VisitorResource = aq.Resource{
		Fields:      textFields("id", "fullName", "NID", "email", "phoneNumber", "gender", "nationality", "profession", "createdAt", "updatedAt"),
		SortAllow:   []string{"fullName", "email", "gender", "nationality", "profession", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Asc("fullName"), aq.Desc("createdAt")},
		Select:      []string{"id", "fullName", "NID", "email", "phoneNumber", "gender", "nationality", "profession", "createdAt", "updatedAt"},
		Keys:        []string{"id"},
	}

	VisitResource = aq.Resource{
		Fields:      textFields("id", "origin", "visitReason", "duration", "arrivalDate", "createdAt", "updatedAt"),
		SortAllow:   []string{"createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Desc("createdAt")},
		Select:      []string{"id", "origin", "visitReason", "duration", "arrivalDate", "createdAt", "updatedAt"},
		Keys:        []string{"id", "residentUserId", "visitorId", "villageId", "file"},
	}

	AnnouncementResource = aq.Resource{
		Fields:      textFields("id", "title", "description", "createdAt", "updatedAt"),
		SortAllow:   []string{"title", "createdAt", "updatedAt"},
		DefaultSort: []aq.SortField{aq.Asc("title"), aq.Desc("createdAt")},
		Select:      []string{"id", "title", "description", "createdAt", "updatedAt"},
		Keys:        []string{"id", "userId", "villageId"},
	}
)
