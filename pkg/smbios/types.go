package smbios

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Type of a structure (the header type tag)
type Type uint8

// List of smbios structure types
const (
	TypeBIOS Type = iota
	TypeSystem
	TypeBaseboard
	TypeChassis
	TypeProcessor
	TypeMemoryController
	TypeMemoryModule
	TypeCache
	TypePortConnector
	TypeSystemSlots
	TypeOnBoardDevices
	TypeOEMStrings
	TypeSystemConfigurationOptions
	TypeBIOSLanguage
	TypeGroupAssociations
	TypeSystemEventLog
	TypePhysicalMemoryArray
	TypeMemoryDevice
	Type32BitMemoryError
	TypeMemoryArrayMappedAddress
	TypeMemoryDeviceMappedAddress
	TypeBuiltinPointingDevice
	TypePortableBattery
	TypeSystemReset
	TypeHardwareSecurity
	TypeSystemPowerControls
	TypeVoltageProbe
	TypeCoolingDevice
	TypeTemperatureProbe
	TypeElectricalCurrentProbe
	TypeOutOfBandRemoteAccess
	TypeBootIntegrityServices
	TypeSystemBoot
	Type64BitMemoryError
	TypeManagementDevice
	TypeManagementDeviceComponent
	TypeManagementDeviceThresholdData
	TypeMemoryChannel
	TypeIPMIDevice
	TypePowerSupply
	TypeAdditionalInformation
	TypeOnboardDevicesExtendedInformation
	TypeManagementControllerHostInterface
	TypeTPMDevice

	// TypeInactive marks a structure disabled by the firmware
	TypeInactive Type = 126
	// TypeEndOfTable terminates the structure table
	TypeEndOfTable Type = 127
)

var typeNames = map[Type]string{
	TypeBIOS:                              "BIOS",
	TypeSystem:                            "System",
	TypeBaseboard:                         "Baseboard",
	TypeChassis:                           "Chassis",
	TypeProcessor:                         "Processor",
	TypeMemoryController:                  "MemoryController",
	TypeMemoryModule:                      "MemoryModule",
	TypeCache:                             "Cache",
	TypePortConnector:                     "PortConnector",
	TypeSystemSlots:                       "SystemSlots",
	TypeOnBoardDevices:                    "OnBoardDevices",
	TypeOEMStrings:                        "OEMStrings",
	TypeSystemConfigurationOptions:        "SystemConfigurationOptions",
	TypeBIOSLanguage:                      "BIOSLanguage",
	TypeGroupAssociations:                 "GroupAssociations",
	TypeSystemEventLog:                    "SystemEventLog",
	TypePhysicalMemoryArray:               "PhysicalMemoryArray",
	TypeMemoryDevice:                      "MemoryDevice",
	Type32BitMemoryError:                  "32BitMemoryError",
	TypeMemoryArrayMappedAddress:          "MemoryArrayMappedAddress",
	TypeMemoryDeviceMappedAddress:         "MemoryDeviceMappedAddress",
	TypeBuiltinPointingDevice:             "BuiltinPointingDevice",
	TypePortableBattery:                   "PortableBattery",
	TypeSystemReset:                       "SystemReset",
	TypeHardwareSecurity:                  "HardwareSecurity",
	TypeSystemPowerControls:               "SystemPowerControls",
	TypeVoltageProbe:                      "VoltageProbe",
	TypeCoolingDevice:                     "CoolingDevice",
	TypeTemperatureProbe:                  "TemperatureProbe",
	TypeElectricalCurrentProbe:            "ElectricalCurrentProbe",
	TypeOutOfBandRemoteAccess:             "OutOfBandRemoteAccess",
	TypeBootIntegrityServices:             "BootIntegrityServices",
	TypeSystemBoot:                        "SystemBoot",
	Type64BitMemoryError:                  "64BitMemoryError",
	TypeManagementDevice:                  "ManagementDevice",
	TypeManagementDeviceComponent:         "ManagementDeviceComponent",
	TypeManagementDeviceThresholdData:     "ManagementThresholdData",
	TypeMemoryChannel:                     "MemoryChannel",
	TypeIPMIDevice:                        "IPMIDevice",
	TypePowerSupply:                       "PowerSupply",
	TypeAdditionalInformation:             "AdditionalInformation",
	TypeOnboardDevicesExtendedInformation: "OnboardDeviceExtendedInformation",
	TypeManagementControllerHostInterface: "ManagementControllerHostInterface",
	TypeTPMDevice:                         "TPMDevice",
	TypeInactive:                          "Inactive",
	TypeEndOfTable:                        "EndOfTable",
}

// String returns the name of the type, vendor types are reported as
// "Custom Type N"
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("%s%d", customPrefix, uint8(t))
}

// customPrefix is how String names types without a known name
const customPrefix = "Custom Type "

// ParseType maps a type name (as returned by String, "Custom Type N"
// included) or a decimal number back to a Type
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}

	n, err := strconv.ParseUint(strings.TrimPrefix(s, customPrefix), 10, 8)
	if err != nil {
		return 0, errors.Errorf("unknown smbios type '%s'", s)
	}
	return Type(n), nil
}
