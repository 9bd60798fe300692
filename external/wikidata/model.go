package wikidata

type sparqlEnvelope struct {
	Results struct {
		Bindings []struct {
			RefLabel sparqlValue `json:"refLabel"`
			LocLabel sparqlValue `json:"locLabel"`
		} `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Value string `json:"value"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchEnvelope struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
	Error *apiError `json:"error"`
}

type entitiesEnvelope struct {
	Entities map[string]struct {
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
	} `json:"entities"`
	Error *apiError `json:"error"`
}
