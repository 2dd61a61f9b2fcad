package nextcloud

import (
	"encoding/xml"
	"strings"
)

const propfindBody = `<d:propfind xmlns:d="DAV:" xmlns:oc="http://owncloud.org/ns" xmlns:nc="http://nextcloud.org/ns">
  <d:prop>
    <d:getlastmodified />
    <d:getetag />
    <d:getcontenttype />
    <d:resourcetype />
    <oc:fileid />
    <oc:permissions />
    <oc:size />
    <d:getcontentlength />
    <nc:has-preview />
    <oc:favorite />
    <oc:comments-unread />
    <oc:owner-display-name />
    <oc:share-types />
  </d:prop>
</d:propfind>`

// prefixStripper removes the DAV, ownCloud and Nextcloud namespace prefixes
// so properties can be matched by local name. It rewrites the whole document, text
// content included, the same way the PHP plugin's str_replace did.
var prefixStripper = strings.NewReplacer("d:", "", "oc:", "", "nc:", "")

type multistatus struct {
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href      string     `xml:"href"`
	Propstats []propstat `xml:"propstat"`
}

type propstat struct {
	Prop   davProps `xml:"prop"`
	Status string   `xml:"status"`
}

type davProps struct {
	FileID       string `xml:"fileid"`
	ETag         string `xml:"getetag"`
	LastModified string `xml:"getlastmodified"`
	Size         string `xml:"size"`
	Permissions  string `xml:"permissions"`
}

// parseMultistatus decodes a PROPFIND reply and returns the properties of its first
// response that carries a file id. An error means the body is not well-formed XML.
func parseMultistatus(body []byte) (davProps, error) {
	var ms multistatus
	if err := xml.Unmarshal([]byte(prefixStripper.Replace(string(body))), &ms); err != nil {
		return davProps{}, err
	}
	if len(ms.Responses) == 0 {
		return davProps{}, nil
	}
	for _, ps := range ms.Responses[0].Propstats {
		if ps.Prop.FileID != "" {
			ps.Prop.FileID = strings.TrimSpace(ps.Prop.FileID)
			return ps.Prop, nil
		}
	}
	return davProps{}, nil
}
