package scan

import (
	"fmt"

	"github.com/udsscan/udsscan/pkg/uds"
)

// Entry is one request template of a service catalog
type Entry struct {
	Label   string
	Request uds.Request
}

type Catalog []Entry

// Validate checks that every request fits a single frame
func (c Catalog) Validate() error {
	for i, e := range c {
		if n := e.Request.Len(); n > uds.MaxRequestLength {
			return fmt.Errorf("entry %d (%s): %w", i, e.Label, &uds.EncodingError{ServiceID: e.Request.ServiceID, Length: n})
		}
	}
	return nil
}

func entry(label string, sid byte, sub *byte, params ...byte) Entry {
	return Entry{
		Label: label,
		Request: uds.Request{
			ServiceID:   sid,
			SubFunction: sub,
			Parameters:  params,
		},
	}
}

var readDTCSubFunctions = []struct {
	sub    byte
	name   string
	params []byte
}{
	{0x01, "reportNumberOfDTCByStatusMask", []byte{0xFF}},
	{0x02, "reportDTCByStatusMask", []byte{0xFF}},
	{0x03, "reportDTCSnapshotIdentification", nil},
	{0x04, "reportDTCSnapshotRecordByDTCNumber", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	{0x05, "reportDTCStoredDataByRecordNumber", []byte{0xFF}},
	{0x06, "reportDTCExtDataRecordByDTCNumber", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	{0x07, "reportNumberOfDTCBySeverityMaskRecord", []byte{0xFF, 0xFF}},
	{0x08, "reportDTCBySeverityMaskRecord", []byte{0xFF, 0xFF}},
	{0x09, "reportSeverityInformationOfDTC", []byte{0xFF, 0xFF, 0xFF}},
	{0x0A, "reportSupportedDTC", nil},
	{0x0B, "reportFirstTestFailedDTC", nil},
	{0x0C, "reportFirstConfirmedDTC", nil},
	{0x0D, "reportMostRecentTestFailedDTC", nil},
	{0x0E, "reportMostRecentConfirmedDTC", nil},
	{0x0F, "reportMirrorMemoryDTCByStatusMask", []byte{0xFF}},
	{0x10, "reportMirrorMemoryDTCExtDataRecordByDTCNumber", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	{0x11, "reportNumberOfMirrorMemoryDTCByStatusMask", []byte{0xFF}},
	{0x12, "reportNumberOfEmissionsOBDDTCByStatusMask", []byte{0xFF}},
	{0x13, "reportEmissionsOBDDTCByStatusMask", []byte{0xFF}},
	{0x14, "reportDTCFaultDetectionCounter", nil},
	{0x15, "reportDTCWithPermanentStatus", nil},
	{0x16, "reportDTCExtDataRecordByRecordNumber", []byte{0xFF}},
	{0x17, "reportUserDefMemoryDTCByStatusMask", []byte{0xFF, 0x00}},
	{0x18, "reportUserDefMemoryDTCSnapshotRecordByDTCNumber", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
	{0x19, "reportUserDefMemoryDTCExtDataRecordByDTCNumber", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
	{0x42, "reportWWHOBDDTCByMaskRecord", []byte{0x33, 0xFF, 0xFF}},
	{0x55, "reportWWHOBDDTCWithPermanentStatus", []byte{0x33}},
	{0x56, "reportDTCInformationByDTCReadinessGroupIdentifier", []byte{0x33, 0x00}},
}

// DefaultCatalog returns the built-in ordered list of probes
func DefaultCatalog() Catalog {
	c := Catalog{
		entry("Diagnostic Session Control: default", uds.ServiceDiagnosticSessionControl, uds.Sub(0x01)),
		entry("Diagnostic Session Control: programming", uds.ServiceDiagnosticSessionControl, uds.Sub(0x02)),
		entry("Diagnostic Session Control: extended", uds.ServiceDiagnosticSessionControl, uds.Sub(0x03)),
		entry("Diagnostic Session Control: safety system", uds.ServiceDiagnosticSessionControl, uds.Sub(0x04)),

		entry("ECU Reset: hard", uds.ServiceECUReset, uds.Sub(0x01)),
		entry("ECU Reset: key off/on", uds.ServiceECUReset, uds.Sub(0x02)),
		entry("ECU Reset: soft", uds.ServiceECUReset, uds.Sub(0x03)),
		entry("ECU Reset: enable rapid power shutdown", uds.ServiceECUReset, uds.Sub(0x04)),
		entry("ECU Reset: disable rapid power shutdown", uds.ServiceECUReset, uds.Sub(0x05)),

		entry("Clear Diagnostic Information: all groups", uds.ServiceClearDiagnosticInformation, nil, 0xFF, 0xFF, 0xFF),
	}

	for _, sf := range readDTCSubFunctions {
		c = append(c, entry("Read DTC Information: "+sf.name, uds.ServiceReadDTCInformation, uds.Sub(sf.sub), sf.params...))
	}

	c = append(c,
		entry("Read Data By Identifier: VIN", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x90),
		entry("Read Data By Identifier: active session", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x86),
		entry("Read Data By Identifier: spare part number", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x87),
		entry("Read Data By Identifier: software version", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x89),
		entry("Read Data By Identifier: ECU serial number", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x8C),
		entry("Read Memory By Address", uds.ServiceReadMemoryByAddress, nil, 0x14, 0x00, 0x00, 0x00, 0x00, 0x01),
		entry("Read Scaling Data By Identifier: VIN", uds.ServiceReadScalingDataByIdentifier, nil, 0xF1, 0x90),

		entry("Security Access: request seed level 1", uds.ServiceSecurityAccess, uds.Sub(0x01)),
		entry("Security Access: request seed level 3", uds.ServiceSecurityAccess, uds.Sub(0x03)),
		entry("Security Access: request seed level 5", uds.ServiceSecurityAccess, uds.Sub(0x05)),
		entry("Security Access: request seed level 7", uds.ServiceSecurityAccess, uds.Sub(0x07)),
		entry("Security Access: request seed level 9", uds.ServiceSecurityAccess, uds.Sub(0x09)),
		entry("Security Access: request seed level 17", uds.ServiceSecurityAccess, uds.Sub(0x11)),

		entry("Communication Control: enable rx and tx", uds.ServiceCommunicationControl, uds.Sub(0x00), 0x01),
		entry("Communication Control: disable rx and tx", uds.ServiceCommunicationControl, uds.Sub(0x03), 0x01),

		entry("Read Data By Periodic Identifier: stop sending", uds.ServiceReadDataByPeriodicIdentifier, nil, 0x04, 0x00),
		entry("Dynamically Define Data Identifier: clear", uds.ServiceDynamicallyDefineDataIdentifier, uds.Sub(0x03), 0xF3, 0x00),

		entry("Write Data By Identifier: repair shop code", uds.ServiceWriteDataByIdentifier, nil, 0xF1, 0x98, 0x00),
		entry("Write Memory By Address", uds.ServiceWriteMemoryByAddress, nil, 0x12, 0x00, 0x00, 0x01, 0x00),

		entry("Input Output Control By Identifier: return control", uds.ServiceInputOutputControlByIdentifier, nil, 0xF0, 0x00, 0x00),

		entry("Routine Control: start check programming preconditions", uds.ServiceRoutineControl, uds.Sub(0x01), 0x02, 0x03),
		entry("Routine Control: request results", uds.ServiceRoutineControl, uds.Sub(0x03), 0xFF, 0x00),

		entry("Request Download", uds.ServiceRequestDownload, nil, 0x00, 0x11, 0x00, 0x01),
		entry("Request Upload", uds.ServiceRequestUpload, nil, 0x00, 0x11, 0x00, 0x01),
		entry("Transfer Data", uds.ServiceTransferData, nil, 0x01),
		entry("Request Transfer Exit", uds.ServiceRequestTransferExit, nil),

		entry("Tester Present", uds.ServiceTesterPresent, uds.Sub(0x00)),

		entry("Access Timing Parameter: read extended set", uds.ServiceAccessTimingParameter, uds.Sub(0x01)),
		entry("Access Timing Parameter: read current", uds.ServiceAccessTimingParameter, uds.Sub(0x03)),

		entry("Secured Data Transmission", uds.ServiceSecuredDataTransmission, nil, 0x00),

		entry("Control DTC Setting: on", uds.ServiceControlDTCSetting, uds.Sub(0x01)),
		entry("Control DTC Setting: off", uds.ServiceControlDTCSetting, uds.Sub(0x02)),

		entry("Response On Event: stop", uds.ServiceResponseOnEvent, uds.Sub(0x00), 0x02),
		entry("Response On Event: report activated events", uds.ServiceResponseOnEvent, uds.Sub(0x04), 0x02),

		entry("Link Control: verify fixed baudrate 500k", uds.ServiceLinkControl, uds.Sub(0x01), 0x12),
	)
	return c
}
