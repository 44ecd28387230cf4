// Package uds builds single frame UDS (ISO 14229) requests, classifies the
// answers and runs one request/response probe over a CAN bus.
package uds

import "fmt"

const (
	// FrameSize is the payload size of every transmitted request
	FrameSize = 8
	// MaxRequestLength is what fits after the PCI length byte
	MaxRequestLength = FrameSize - 1

	PositiveResponseOffset byte = 0x40
	NegativeResponse       byte = 0x7F

	DefaultPadding byte   = 0x55
	TesterID       uint32 = 0x7E0
	ECUID          uint32 = 0x7E8
)

// UDS service identifiers
const (
	ServiceDiagnosticSessionControl        byte = 0x10
	ServiceECUReset                        byte = 0x11
	ServiceClearDiagnosticInformation      byte = 0x14
	ServiceReadDTCInformation              byte = 0x19
	ServiceReadDataByIdentifier            byte = 0x22
	ServiceReadMemoryByAddress             byte = 0x23
	ServiceReadScalingDataByIdentifier     byte = 0x24
	ServiceSecurityAccess                  byte = 0x27
	ServiceCommunicationControl            byte = 0x28
	ServiceReadDataByPeriodicIdentifier    byte = 0x2A
	ServiceDynamicallyDefineDataIdentifier byte = 0x2C
	ServiceWriteDataByIdentifier           byte = 0x2E
	ServiceInputOutputControlByIdentifier  byte = 0x2F
	ServiceRoutineControl                  byte = 0x31
	ServiceRequestDownload                 byte = 0x34
	ServiceRequestUpload                   byte = 0x35
	ServiceTransferData                    byte = 0x36
	ServiceRequestTransferExit             byte = 0x37
	ServiceWriteMemoryByAddress            byte = 0x3D
	ServiceTesterPresent                   byte = 0x3E
	ServiceAccessTimingParameter           byte = 0x83
	ServiceSecuredDataTransmission         byte = 0x84
	ServiceControlDTCSetting               byte = 0x85
	ServiceResponseOnEvent                 byte = 0x86
	ServiceLinkControl                     byte = 0x87
)

var serviceNames = map[byte]string{
	ServiceDiagnosticSessionControl:        "DiagnosticSessionControl",
	ServiceECUReset:                        "ECUReset",
	ServiceClearDiagnosticInformation:      "ClearDiagnosticInformation",
	ServiceReadDTCInformation:              "ReadDTCInformation",
	ServiceReadDataByIdentifier:            "ReadDataByIdentifier",
	ServiceReadMemoryByAddress:             "ReadMemoryByAddress",
	ServiceReadScalingDataByIdentifier:     "ReadScalingDataByIdentifier",
	ServiceSecurityAccess:                  "SecurityAccess",
	ServiceCommunicationControl:            "CommunicationControl",
	ServiceReadDataByPeriodicIdentifier:    "ReadDataByPeriodicIdentifier",
	ServiceDynamicallyDefineDataIdentifier: "DynamicallyDefineDataIdentifier",
	ServiceWriteDataByIdentifier:           "WriteDataByIdentifier",
	ServiceInputOutputControlByIdentifier:  "InputOutputControlByIdentifier",
	ServiceRoutineControl:                  "RoutineControl",
	ServiceRequestDownload:                 "RequestDownload",
	ServiceRequestUpload:                   "RequestUpload",
	ServiceTransferData:                    "TransferData",
	ServiceRequestTransferExit:             "RequestTransferExit",
	ServiceWriteMemoryByAddress:            "WriteMemoryByAddress",
	ServiceTesterPresent:                   "TesterPresent",
	ServiceAccessTimingParameter:           "AccessTimingParameter",
	ServiceSecuredDataTransmission:         "SecuredDataTransmission",
	ServiceControlDTCSetting:               "ControlDTCSetting",
	ServiceResponseOnEvent:                 "ResponseOnEvent",
	ServiceLinkControl:                     "LinkControl",
}

// ServiceName returns the name of a request service id, or its hex value if unknown
func ServiceName(sid byte) string {
	if name, ok := serviceNames[sid]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", sid)
}
