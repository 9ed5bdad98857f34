package table

import (
	"net/url"
	"strings"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="

// MenuURL is the customer menu address. An empty tableID gives the
// restaurant-wide link.
func MenuURL(baseURL, restaurantID, tableID string) string {
	link := strings.TrimRight(baseURL, "/") + "/menu/" + url.PathEscape(restaurantID)
	if tableID != "" {
		link += "?table=" + url.QueryEscape(tableID)
	}
	return link
}

// QRImageURL returns a hosted QR image encoding data.
func QRImageURL(data string) string {
	return qrServiceURL + url.QueryEscape(data)
}

func newQRLink(baseURL, restaurantID string, t *Table) QRLink {
	link := QRLink{MenuURL: MenuURL(baseURL, restaurantID, "")}
	if t != nil {
		link.TableID = t.ID
		link.TableNumber = t.TableNumber
		link.MenuURL = MenuURL(baseURL, restaurantID, t.ID)
	}
	link.QRImageURL = QRImageURL(link.MenuURL)
	return link
}
