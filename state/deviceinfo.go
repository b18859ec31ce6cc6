// This file is part of SteamDeck Controls.
//
// SteamDeck Controls is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SteamDeck Controls is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SteamDeck Controls.  If not, see <https://www.gnu.org/licenses/>.

package state

import (
	"fmt"

	"github.com/google/uuid"
)

// DeviceInfo describes one physical controller attached to the sampling
// side. The list of DeviceInfo is sent to the peer when the connection is
// established so it can show the user which devices are being relayed.
type DeviceInfo struct {
	Name      string `json:"name"`
	UUID      string `json:"uuid"`
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	Connected bool   `json:"connected"`
}

// NewDeviceInfo is the preferred method of initialisation for the DeviceInfo
// type. The UUID field is assigned a freshly generated identifier. The
// identifier is stable for the lifetime of the process but not across
// restarts - nothing persists between runs.
func NewDeviceInfo(name string, vendorID uint16, productID uint16) DeviceInfo {
	return DeviceInfo{
		Name:      name,
		UUID:      uuid.NewString(),
		VendorID:  vendorID,
		ProductID: productID,
		Connected: true,
	}
}

func (inf DeviceInfo) String() string {
	return fmt.Sprintf("%s [%04x:%04x]", inf.Name, inf.VendorID, inf.ProductID)
}
