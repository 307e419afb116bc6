package authors

import (
	"strings"

	"github.com/5w1tchy/course-library-api/internal/api/httpx"
)

// Author representations selectable through Accept.
const (
	MediaJSON                = "application/json"
	MediaHateoas             = "application/vnd.marvin.hateoas+json"
	MediaFriendly            = "application/vnd.marvin.author.friendly+json"
	MediaFriendlyHateoas     = "application/vnd.marvin.author.friendly.hateoas+json"
	MediaFull                = "application/vnd.marvin.author.full+json"
	MediaFullHateoas         = "application/vnd.marvin.author.full.hateoas+json"
	MediaCreate              = "application/vnd.marvin.authorforcreation+json"
	MediaCreateWithDeathDate = "application/vnd.marvin.authorforcreationwithdateofdeath+json"
)

type representation struct {
	mediaType string
	full      bool
	links     bool
}

var representations = map[string]representation{
	MediaJSON:            {mediaType: MediaJSON},
	MediaFriendly:        {mediaType: MediaFriendly},
	MediaHateoas:         {mediaType: MediaHateoas, links: true},
	MediaFriendlyHateoas: {mediaType: MediaFriendlyHateoas, links: true},
	MediaFull:            {mediaType: MediaFull, full: true},
	MediaFullHateoas:     {mediaType: MediaFullHateoas, full: true, links: true},
}

// negotiate picks the first supported media type of an Accept header, in the
// order the client listed them. No Accept, or a wildcard, means plain JSON.
func negotiate(accept string) (representation, bool) {
	if strings.TrimSpace(accept) == "" {
		return representations[MediaJSON], true
	}
	for _, part := range strings.Split(accept, ",") {
		mt := httpx.MediaType(part)
		if rep, ok := representations[mt]; ok {
			return rep, true
		}
		if mt == "*/*" || mt == "application/*" {
			return representations[MediaJSON], true
		}
	}
	return representation{}, false
}
